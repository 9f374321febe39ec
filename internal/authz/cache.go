// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package authz

import "sync"

// maxCachedDecisions bounds the cache; detail routes make the path space open-ended.
const maxCachedDecisions = 4096

// decisionCache memoizes enforcement results per role and path.
type decisionCache struct {
	mu    sync.RWMutex
	items map[string]bool
}

func newDecisionCache() *decisionCache {
	return &decisionCache{items: make(map[string]bool)}
}

func (c *decisionCache) key(subject, object string) string {
	return subject + ":" + object
}

func (c *decisionCache) get(subject, object string) (allowed, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	allowed, ok = c.items[c.key(subject, object)]
	return allowed, ok
}

func (c *decisionCache) set(subject, object string, allowed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) >= maxCachedDecisions {
		c.items = make(map[string]bool)
	}
	c.items[c.key(subject, object)] = allowed
}
