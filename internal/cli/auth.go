// Pawshop - Pet Supply Storefront and Back Office Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pawshop

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/pawshop/internal/app"
	"github.com/tomtom215/pawshop/internal/authz"
	"github.com/tomtom215/pawshop/internal/gateway"
	"github.com/tomtom215/pawshop/internal/models"
	"github.com/tomtom215/pawshop/internal/shopapi"
	"github.com/tomtom215/pawshop/internal/view"
)

// signInResult is what login and register print.
type signInResult struct {
	Redirect  string           `json:"redirect"`
	Principal models.Principal `json:"principal"`
}

// whoamiResult is what whoami prints.
type whoamiResult struct {
	SignedIn  bool              `json:"signedIn"`
	Principal *models.Principal `json:"principal,omitempty"`
	Home      string            `json:"home,omitempty"`
}

func newLoginCommand(e *env) *cobra.Command {
	var req shopapi.LoginRequest
	var from string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with an email and password. The session is stored locally and
used by every later command until logout or until the server rejects it.

The password is read from standard input when --password is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				pw, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}
				req.Password = pw
			}
			return e.withApp(cmd.Context(), func(a *app.App) error {
				redirect, err := a.Login(cmd.Context(), req, from)
				if err != nil {
					return signInError("login", err)
				}
				return e.printSignIn(cmd, a, redirect)
			})
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&from, "from", "", "route to continue to after signing in")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newRegisterCommand(e *env) *cobra.Command {
	var req shopapi.RegisterRequest
	var from string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a customer account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				pw, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}
				req.Password = pw
			}
			return e.withApp(cmd.Context(), func(a *app.App) error {
				redirect, err := a.Register(cmd.Context(), req, from)
				if err != nil {
					return signInError("register", err)
				}
				return e.printSignIn(cmd, a, redirect)
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&from, "from", "", "route to continue to after signing in")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withApp(cmd.Context(), func(a *app.App) error {
				if err := a.Logout(cmd.Context()); err != nil {
					return fmt.Errorf("logout: %w", err)
				}
				if e.json() {
					return writeJSON(cmd.OutOrStdout(), whoamiResult{})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
				return nil
			})
		},
	}
}

func newWhoamiCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in principal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.withApp(cmd.Context(), func(a *app.App) error {
				var res whoamiResult
				if p, ok := a.Whoami(); ok {
					res = whoamiResult{SignedIn: true, Principal: &p, Home: authz.HomeFor(p.Role)}
				}
				if e.json() {
					return writeJSON(cmd.OutOrStdout(), res)
				}
				out := cmd.OutOrStdout()
				if !res.SignedIn {
					fmt.Fprintln(out, "Not signed in.")
					return nil
				}
				printPrincipal(out, *res.Principal)
				fmt.Fprintf(out, "Home:  %s\n", res.Home)
				return nil
			})
		},
	}
}

func (e *env) printSignIn(cmd *cobra.Command, a *app.App, redirect string) error {
	p, _ := a.Whoami()
	if e.json() {
		return writeJSON(cmd.OutOrStdout(), signInResult{Redirect: redirect, Principal: p})
	}
	out := cmd.OutOrStdout()
	printPrincipal(out, p)
	fmt.Fprintf(out, "Next:  %s\n", redirect)
	return nil
}

func printPrincipal(w io.Writer, p models.Principal) {
	fmt.Fprintf(w, "User:  %s <%s>\n", p.Name, p.Email)
	fmt.Fprintf(w, "Role:  %s\n", view.RoleLabel(p.Role))
}

// signInError reports a failed sign-in with the server's message.
func signInError(op string, err error) error {
	if gateway.KindOf(err) != 0 {
		return fmt.Errorf("%s: %s", op, gateway.MessageOf(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// readSecret reads one line from r.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
