package cli

import (
	"context"
	"fmt"
	"strings"

	"trotamundos/internal/api"
)

// editProfile updates the name fields. Blank input keeps the current
// value; only changed fields go on the wire.
func (a *App) editProfile(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	u := a.session.User()

	first, err := getSimpleText(a.reader, fmt.Sprintf("First name [%s] (blank keeps current)", u.FirstName), a.out)
	if err != nil {
		return
	}
	last, err := getSimpleText(a.reader, fmt.Sprintf("Last name [%s] (blank keeps current)", u.LastName), a.out)
	if err != nil {
		return
	}

	var upd api.ProfileUpdate
	if first != "" && first != u.FirstName {
		upd.FirstName = &first
	}
	if last != "" && last != u.LastName {
		upd.LastName = &last
	}
	if upd.FirstName == nil && upd.LastName == nil {
		fmt.Fprintln(a.out, "Nothing to change.")
		return
	}

	updated, err := a.client.UpdateProfile(ctx, upd)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	a.session.UpdateUser(updated)
	fmt.Fprintf(a.out, "Profile saved, %s.\n", updated.DisplayName())
}

// recommendations prints the personalized feed, best match first.
func (a *App) recommendations(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	recs, err := a.client.Recommendations(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "Nothing to recommend yet. Set some interests first (setinterests).")
		return
	}
	for _, r := range recs {
		fmt.Fprintf(a.out, "%.2f %-40s %s\n", r.Score, r.Article.Slug, a.articleSummary(&r.Article))
	}
}

func (a *App) showInterests(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	in, err := a.client.Interests(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	if len(in.Interests) == 0 {
		fmt.Fprintln(a.out, "No interests set.")
		return
	}
	names := make([]string, 0, len(in.Interests))
	for _, t := range in.Interests {
		names = append(names, t.Name)
	}
	fmt.Fprintf(a.out, "Interests: %s\n", strings.Join(names, ", "))
}

// setInterests replaces the interest set with tags picked from the
// catalogue. Unknown names are ignored with a notice rather than
// created, interests only ever reference existing tags.
func (a *App) setInterests(ctx context.Context) {
	if !a.requireLogin() {
		return
	}

	tags, err := a.client.Tags(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	names := make([]string, 0, len(tags))
	byName := make(map[string]int64, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
		byName[strings.ToLower(t.Name)] = t.ID
	}
	fmt.Fprintf(a.out, "Available tags: %s\n", strings.Join(names, ", "))

	line, err := getSimpleText(a.reader, "Your interests, comma-separated (blank clears)", a.out)
	if err != nil {
		return
	}

	var ids []int64
	for _, name := range strings.Split(line, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, ok := byName[strings.ToLower(name)]
		if !ok {
			fmt.Fprintf(a.out, "Skipping unknown tag %q\n", name)
			continue
		}
		ids = append(ids, id)
	}

	in, err := a.client.UpdateInterests(ctx, ids)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	fmt.Fprintf(a.out, "Saved %d interest(s).\n", len(in.Interests))
}
