package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"trotamundos/internal/api"
)

func (a *App) getStatus() string {
	s := ""
	if u := a.session.User(); u != nil {
		s = u.Email + " "
	}
	if mode := a.currentMode(); mode != "" {
		s = s + string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", strings.TrimSpace(s))
	}
	return s
}

// Root runs the command loop until exit or EOF.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Trotamundos (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	for {
		fmt.Fprintf(a.out, "tmt %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.whoami(ctx)
		case "profile":
			a.editProfile(ctx)
		case "articles":
			a.listArticles(ctx, args)
		case "read":
			a.readArticle(ctx, args)
		case "write":
			a.writeArticle(ctx)
		case "edit":
			a.editArticle(ctx, args)
		case "delete":
			a.deleteArticle(ctx, args)
		case "rate":
			a.rateArticle(ctx, args)
		case "comments":
			a.listComments(ctx, args)
		case "comment":
			a.addComment(ctx, args)
		case "tags":
			a.listTags(ctx)
		case "destinations":
			a.listDestinations(ctx)
		case "destination":
			a.showDestination(ctx, args)
		case "continents":
			a.listContinents(ctx)
		case "bycontinent":
			a.destinationsByContinent(ctx)
		case "recommend":
			a.recommendations(ctx)
		case "interests":
			a.showInterests(ctx)
		case "setinterests":
			a.setInterests(ctx)
		case "users":
			a.listUsers(ctx)
		case "setrole":
			a.setRole(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if a.session.Authenticated() {
		fmt.Fprintln(a.out, "Available commands: articles, read, write, edit, delete, rate, comments, comment,")
		fmt.Fprintln(a.out, "  tags, destinations, destination, continents, bycontinent, recommend,")
		fmt.Fprintln(a.out, "  interests, setinterests, users, setrole, whoami, profile, logout, exit")
	} else {
		fmt.Fprintln(a.out, "Available commands: register, login, articles, read, comments, tags,")
		fmt.Fprintln(a.out, "  destinations, destination, continents, bycontinent, exit")
	}
}

// reportError prints an expected API failure for the user. A rejected
// token additionally ends the session here, so every command reacts to
// expiry the same way.
func (a *App) reportError(ctx context.Context, err error) {
	var verr *api.ValidationError
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		a.session.Logout(ctx)
		fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
	case errors.Is(err, api.ErrForbidden):
		fmt.Fprintln(a.out, "You do not have permission to do that.")
	case errors.Is(err, api.ErrNotFound):
		fmt.Fprintln(a.out, "Not found.")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "The server is unreachable. Try again later.")
	case errors.As(err, &verr):
		fmt.Fprintln(a.out, verr.Error())
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

// requireLogin gates commands that need an authenticated session.
func (a *App) requireLogin() bool {
	if a.session.Authenticated() {
		return true
	}
	fmt.Fprintln(a.out, "Please log in first.")
	return false
}
