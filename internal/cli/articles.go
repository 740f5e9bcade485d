package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"trotamundos/internal/access"
	"trotamundos/internal/api"
	"trotamundos/internal/models"
)

var getMultiline = GetMultiline

// listArticles prints the article feed. Arguments starting with "tag:"
// filter by tag slug, everything else is joined into a search phrase.
func (a *App) listArticles(ctx context.Context, args []string) {
	var q struct {
		search []string
		tags   []string
	}
	for _, arg := range args {
		if rest, ok := strings.CutPrefix(arg, "tag:"); ok {
			q.tags = append(q.tags, rest)
		} else {
			q.search = append(q.search, arg)
		}
	}

	articles, err := a.client.Articles(ctx, api.ArticleQuery{
		Search: strings.Join(q.search, " "),
		Tags:   q.tags,
	})
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	if len(articles) == 0 {
		fmt.Fprintln(a.out, "No articles found.")
		return
	}
	for _, art := range articles {
		fmt.Fprintf(a.out, "%-40s %s\n", art.Slug, a.articleSummary(&art))
	}
}

func (a *App) articleSummary(art *models.Article) string {
	rating := "unrated"
	if art.AvgRating != nil {
		rating = fmt.Sprintf("%.1f/5 (%d)", *art.AvgRating, art.RatingsCount)
	}
	s := fmt.Sprintf("%s by %s, %s", art.Title, art.Author.DisplayName, rating)
	if art.IsDestination && art.ContinentName != "" {
		s += ", " + art.ContinentName
	}
	return s
}

func (a *App) readArticle(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: read <slug>")
		return
	}

	art, err := a.client.Article(ctx, args[0])
	if err != nil {
		a.reportError(ctx, err)
		return
	}

	fmt.Fprintf(a.out, "%s\n", art.Title)
	fmt.Fprintf(a.out, "by %s on %s\n", art.Author.DisplayName, art.CreatedAt.Format("2 Jan 2006"))
	if len(art.Tags) > 0 {
		names := make([]string, 0, len(art.Tags))
		for _, t := range art.Tags {
			names = append(names, t.Name)
		}
		fmt.Fprintf(a.out, "Tags: %s\n", strings.Join(names, ", "))
	}
	if art.AvgRating != nil {
		fmt.Fprintf(a.out, "Rating: %.1f/5 (%d ratings)\n", *art.AvgRating, art.RatingsCount)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, art.Content)
}

// writeArticle publishes a new article. Publishing is capability-gated:
// readers are turned away before any prompting happens.
func (a *App) writeArticle(ctx context.Context) {
	if !a.requireLogin() {
		return
	}
	caps := a.gate.Evaluate(ctx, a.session.Session())
	if !caps.CanCreateContent {
		fmt.Fprintln(a.out, "Your account cannot publish articles.")
		return
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return
	}
	draft, err := a.promptDraftDetails(ctx)
	if err != nil {
		return
	}
	draft.Title = title
	draft.Content = content

	art, err := a.client.CreateArticle(ctx, draft)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	fmt.Fprintf(a.out, "Published %q as %s\n", art.Title, art.Slug)
}

func (a *App) editArticle(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: edit <slug>")
		return
	}

	art, err := a.client.Article(ctx, args[0])
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	if !a.mayModify(ctx, art) {
		fmt.Fprintln(a.out, "Only the author or an administrator can edit this article.")
		return
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s] (blank keeps current)", art.Title), a.out)
	if err != nil {
		return
	}
	content, err := getMultiline(a.reader, "Content (blank keeps current)", a.out)
	if err != nil {
		return
	}

	updated, err := a.client.UpdateArticle(ctx, art.Slug, api.ArticleDraft{Title: title, Content: content})
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	fmt.Fprintf(a.out, "Updated %s\n", updated.Slug)
}

func (a *App) deleteArticle(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delete <slug>")
		return
	}

	art, err := a.client.Article(ctx, args[0])
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	if !a.mayModify(ctx, art) {
		fmt.Fprintln(a.out, "Only the author or an administrator can delete this article.")
		return
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %q? (y/N)", art.Title), a.out)
	if err != nil || !strings.EqualFold(answer, "y") {
		fmt.Fprintln(a.out, "Cancelled.")
		return
	}

	if err := a.client.DeleteArticle(ctx, art.Slug); err != nil {
		a.reportError(ctx, err)
		return
	}
	fmt.Fprintf(a.out, "Deleted %s\n", art.Slug)
}

// mayModify reports whether the current user can edit or delete art:
// the author always can, an administrator can too.
func (a *App) mayModify(ctx context.Context, art *models.Article) bool {
	sess := a.session.Session()
	if access.IsOwner(sess, art.Author.ID) {
		return true
	}
	return a.gate.Evaluate(ctx, sess).IsAdmin
}

func (a *App) rateArticle(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: rate <slug> <1-5>")
		return
	}
	score, err := strconv.Atoi(args[1])
	if err != nil || score < 1 || score > 5 {
		fmt.Fprintln(a.out, "The score must be a number from 1 to 5.")
		return
	}

	rating, err := a.client.RateArticle(ctx, args[0], score)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	fmt.Fprintf(a.out, "Rated %s: %d/5\n", args[0], rating.Score)
}

func (a *App) listComments(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: comments <slug>")
		return
	}

	comments, err := a.client.Comments(ctx, args[0])
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	if len(comments) == 0 {
		fmt.Fprintln(a.out, "No comments yet.")
		return
	}
	for _, c := range comments {
		name := c.AuthorName
		if name == "" {
			name = c.User.DisplayName
		}
		fmt.Fprintf(a.out, "[%s] %s: %s\n", c.CreatedAt.Format("2 Jan 2006"), name, c.Content)
	}
}

func (a *App) addComment(ctx context.Context, args []string) {
	if !a.requireLogin() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: comment <slug>")
		return
	}

	content, err := getMultiline(a.reader, "Comment", a.out)
	if err != nil {
		return
	}
	if content == "" {
		fmt.Fprintln(a.out, "Empty comment discarded.")
		return
	}

	if _, err := a.client.AddComment(ctx, args[0], content); err != nil {
		a.reportError(ctx, err)
		return
	}
	fmt.Fprintln(a.out, "Comment posted.")
}

func (a *App) listTags(ctx context.Context) {
	tags, err := a.client.Tags(ctx)
	if err != nil {
		a.reportError(ctx, err)
		return
	}
	for _, t := range tags {
		fmt.Fprintf(a.out, "%-20s (filter with tag:%s)\n", t.Name, t.Slug)
	}
}

// promptDraftDetails collects tags and the optional destination info for
// a new article. Tag names matching existing tags are referenced by id,
// unknown names are created server-side.
func (a *App) promptDraftDetails(ctx context.Context) (api.ArticleDraft, error) {
	var draft api.ArticleDraft

	tagLine, err := getSimpleText(a.reader, "Tags, comma-separated (optional)", a.out)
	if err != nil {
		return draft, err
	}
	if tagLine != "" {
		known := map[string]int64{}
		if tags, err := a.client.Tags(ctx); err == nil {
			for _, t := range tags {
				known[strings.ToLower(t.Name)] = t.ID
			}
		}
		for _, name := range strings.Split(tagLine, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if id, ok := known[strings.ToLower(name)]; ok {
				draft.TagIDs = append(draft.TagIDs, id)
			} else {
				draft.NewTags = append(draft.NewTags, name)
			}
		}
	}

	answer, err := getSimpleText(a.reader, "Is this a destination guide? (y/N)", a.out)
	if err != nil {
		return draft, err
	}
	if strings.EqualFold(answer, "y") {
		draft.IsDestination = true
		continents, err := a.client.Continents(ctx)
		if err != nil {
			a.reportError(ctx, err)
			return draft, err
		}
		for _, c := range continents {
			fmt.Fprintf(a.out, "  %d: %s\n", c.ID, c.Name)
		}
		idLine, err := getSimpleText(a.reader, "Continent id", a.out)
		if err != nil {
			return draft, err
		}
		id, err := strconv.ParseInt(idLine, 10, 64)
		if err != nil {
			fmt.Fprintln(a.out, "A destination guide needs a continent.")
			return draft, err
		}
		draft.Continent = &id
	}
	return draft, nil
}
