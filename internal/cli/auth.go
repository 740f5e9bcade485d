package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing; they point at the interactive input helpers.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email, password and optional names and creates
// the account; a successful registration logs the user in right away.
func (a *App) Register(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return
	}
	password, err := getPassword(a.out)
	if err != nil {
		return
	}
	firstName, err := getSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		return
	}
	lastName, err := getSimpleText(a.reader, "Last name (optional)", a.out)
	if err != nil {
		return
	}

	if !a.session.Register(ctx, email, password, firstName, lastName) {
		fmt.Fprintln(a.out, a.session.Err())
		return
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", a.session.User().DisplayName())
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return
	}
	password, err := getPassword(a.out)
	if err != nil {
		return
	}

	if !a.session.Login(ctx, email, password) {
		fmt.Fprintln(a.out, a.session.Err())
		return
	}
	fmt.Fprintf(a.out, "Welcome back, %s!\n", a.session.User().DisplayName())
}

// Logout ends the session. Safe to call while anonymous.
func (a *App) Logout(ctx context.Context) {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
}

func (a *App) whoami(ctx context.Context) {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	caps := a.gate.Evaluate(ctx, a.session.Session())

	fmt.Fprintf(a.out, "%s <%s>\n", u.DisplayName(), u.Email)
	if u.DateJoined != nil {
		fmt.Fprintf(a.out, "Member since %s\n", u.DateJoined.Format("2 Jan 2006"))
	}
	if caps.Role != "" {
		fmt.Fprintf(a.out, "Role: %s\n", caps.Role)
	}
	fmt.Fprintf(a.out, "Can publish: %v, admin: %v\n", caps.CanCreateContent, caps.IsAdmin)
}
