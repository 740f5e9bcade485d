package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"trotamundos/internal/models"
)

// listUsers prints every account. The endpoint itself is admin-only; a
// non-admin caller simply gets the forbidden message from reportError.
func (a *App) listUsers(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	users, err := a.client.Users(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%4d %-30s %-24s %s\n", u.ID, u.Email, u.DisplayName(), u.Role)
	}
}

// setRole changes another account's role.
func (a *App) setRole(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: setrole <user-id> <reader|writer|admin>")
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "The user id must be a number.")
		return
	}
	role := strings.ToLower(args[1])
	if !models.ValidRole(role) {
		fmt.Fprintf(a.out, "Unknown role %q, expected reader, writer or admin.\n", args[1])
		return
	}

	u, err := a.client.UpdateUserRole(ctx, id, role)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	fmt.Fprintf(a.out, "%s is now a %s.\n", u.Email, u.Role)
}
