// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package authz

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/routes"
)

//go:embed model.conf
var embeddedModel string

// ActionView is the only action the route policy grants.
const ActionView = "view"

// EnforcerConfig holds configuration for the Casbin enforcer.
type EnforcerConfig struct {
	// ModelPath overrides the embedded model when the file exists.
	ModelPath string

	// PolicyPath overrides the policy generated from the route table when
	// the file exists.
	PolicyPath string

	// CacheEnabled enables decision caching. Decisions only change when
	// the policy is reloaded, so entries never expire on their own.
	CacheEnabled bool
}

// Enforcer answers "may this role view this path".
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
	cache    *decisionCache
}

// NewEnforcer creates an enforcer. Without a policy file the policy is
// generated from table: one "p, <role>, <pattern>, view" line per
// restricted route and allowed role.
func NewEnforcer(config EnforcerConfig, table *routes.Table) (*Enforcer, error) {
	var m model.Model
	var err error

	if config.ModelPath != "" && fileExists(config.ModelPath) {
		m, err = model.NewModelFromFile(config.ModelPath)
	} else {
		m, err = model.NewModelFromString(embeddedModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if config.PolicyPath != "" && fileExists(config.PolicyPath) {
		enforcer, err = casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(config.PolicyPath))
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadRoutePolicy(enforcer, table)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	e := &Enforcer{enforcer: enforcer}
	if config.CacheEnabled {
		e.cache = newDecisionCache()
	}
	return e, nil
}

// RoutePolicy returns the policy rules generated from table.
func RoutePolicy(table *routes.Table) [][]string {
	var rules [][]string
	if table == nil {
		return rules
	}
	for _, r := range table.Routes() {
		for _, role := range r.Roles {
			rules = append(rules, []string{string(role), r.Pattern, ActionView})
		}
	}
	return rules
}

func loadRoutePolicy(enforcer *casbin.SyncedEnforcer, table *routes.Table) error {
	rules := RoutePolicy(table)
	if len(rules) == 0 {
		return nil
	}
	if _, err := enforcer.AddPolicies(rules); err != nil {
		return fmt.Errorf("failed to add route policy: %w", err)
	}
	return nil
}

// Allowed reports whether role may view path. The check is exact role
// membership: the model has no role hierarchy.
func (e *Enforcer) Allowed(role models.Role, path string) (bool, error) {
	subject := string(role)
	if e.cache != nil {
		if allowed, ok := e.cache.get(subject, path); ok {
			return allowed, nil
		}
	}

	allowed, err := e.enforcer.Enforce(subject, path, ActionView)
	if err != nil {
		return false, fmt.Errorf("enforcement failed: %w", err)
	}

	if e.cache != nil {
		e.cache.set(subject, path, allowed)
	}
	return allowed, nil
}

// Policy returns all policy rules.
func (e *Enforcer) Policy() [][]string {
	//nolint:errcheck // GetPolicy only fails if enforcer is nil, which is a programming error
	policies, _ := e.enforcer.GetPolicy()
	return policies
}

// PolicyCSV renders rules in casbin's CSV policy format.
func PolicyCSV(rules [][]string) string {
	var b strings.Builder
	for _, rule := range rules {
		b.WriteString("p, ")
		b.WriteString(strings.Join(rule, ", "))
		b.WriteByte('\n')
	}
	return b.String()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
