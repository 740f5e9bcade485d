package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"trotamundos/internal/access"
	"trotamundos/internal/api"
	"trotamundos/internal/config"
	"trotamundos/internal/logging"
	"trotamundos/internal/models"
	"trotamundos/internal/session"
)

// ---- fakes ----

// fakeClient implements api.Client for command tests. Methods a test does
// not configure panic through the embedded nil interface.
type fakeClient struct {
	api.Client

	ObtainRet   api.TokenPair
	ObtainErr   error
	RegisterErr error
	ProfileRet  *models.User
	ProfileErr  error
	UpdatedRet  *models.User
	UpdatedErr  error
	LastUpdate  api.ProfileUpdate
	PermsRet    api.Permissions
	PermsErr    error
	PermsHits   int

	ArticlesRet []models.Article
	ArticlesErr error
	ArticleRet  *models.Article
	ArticleErr  error
	RateRet     *models.Rating
	RateErr     error
	DeleteErr   error
	TagsRet     []models.Tag
	UsersRet    []models.User
	RoleRet     *models.User
	RoleErr     error

	LastQuery       api.ArticleQuery
	LastRatedSlug   string
	LastRatedScore  int
	LastDeletedSlug string
	LastRoleID      int64
	LastRole        string

	// TokenHolder side.
	Access  string
	Refresh string
	hook    func(ctx context.Context, pair api.TokenPair)
}

func (f *fakeClient) ObtainToken(ctx context.Context, email, password string) (api.TokenPair, error) {
	return f.ObtainRet, f.ObtainErr
}
func (f *fakeClient) Register(ctx context.Context, reg api.Registration) error { return f.RegisterErr }
func (f *fakeClient) Profile(ctx context.Context) (*models.User, error) {
	return f.ProfileRet, f.ProfileErr
}
func (f *fakeClient) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) (*models.User, error) {
	f.LastUpdate = upd
	return f.UpdatedRet, f.UpdatedErr
}
func (f *fakeClient) Permissions(ctx context.Context) (api.Permissions, error) {
	f.PermsHits++
	return f.PermsRet, f.PermsErr
}
func (f *fakeClient) Articles(ctx context.Context, q api.ArticleQuery) ([]models.Article, error) {
	f.LastQuery = q
	return f.ArticlesRet, f.ArticlesErr
}
func (f *fakeClient) Article(ctx context.Context, slug string) (*models.Article, error) {
	return f.ArticleRet, f.ArticleErr
}
func (f *fakeClient) RateArticle(ctx context.Context, slug string, score int) (*models.Rating, error) {
	f.LastRatedSlug, f.LastRatedScore = slug, score
	return f.RateRet, f.RateErr
}
func (f *fakeClient) DeleteArticle(ctx context.Context, slug string) error {
	f.LastDeletedSlug = slug
	return f.DeleteErr
}
func (f *fakeClient) Tags(ctx context.Context) ([]models.Tag, error) { return f.TagsRet, nil }
func (f *fakeClient) Users(ctx context.Context) ([]models.User, error) {
	return f.UsersRet, nil
}
func (f *fakeClient) UpdateUserRole(ctx context.Context, userID int64, role string) (*models.User, error) {
	f.LastRoleID, f.LastRole = userID, role
	return f.RoleRet, f.RoleErr
}

func (f *fakeClient) SetTokens(access, refresh string) { f.Access, f.Refresh = access, refresh }
func (f *fakeClient) ClearTokens()                     { f.Access, f.Refresh = "", "" }
func (f *fakeClient) OnTokensRefreshed(fn func(ctx context.Context, pair api.TokenPair)) {
	f.hook = fn
}

type memRepo struct{ data map[string]string }

func newMemRepo() *memRepo { return &memRepo{data: map[string]string{}} }

func (m *memRepo) Get(ctx context.Context, key string) (string, error) { return m.data[key], nil }
func (m *memRepo) Set(ctx context.Context, key, value string) error {
	m.data[key] = value
	return nil
}
func (m *memRepo) SetPair(ctx context.Context, access, refresh string) error {
	m.data["access_token"] = access
	m.data["refresh_token"] = refresh
	return nil
}
func (m *memRepo) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}
func (m *memRepo) Clear(ctx context.Context) error {
	m.data = map[string]string{}
	return nil
}

// ---- helpers ----

func newTestApp(t *testing.T, client *fakeClient) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	store := session.NewStore(client, client, newMemRepo(), nil)
	return &App{
		config:  &config.Config{},
		log:     logging.Discard(),
		client:  client,
		session: store,
		gate:    access.NewGate(client, nil),
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     out,
	}, out
}

func loginTestApp(t *testing.T, client *fakeClient) (*App, *bytes.Buffer) {
	t.Helper()
	client.ObtainRet = api.TokenPair{Access: "acc", Refresh: "ref"}
	if client.ProfileRet == nil {
		client.ProfileRet = &models.User{ID: 7, Email: "alice@example.com", FirstName: "Alice"}
	}
	app, out := newTestApp(t, client)
	require.True(t, app.session.Login(context.Background(), "alice@example.com", "pw"))
	out.Reset()
	return app, out
}

func stubInputs(t *testing.T, lines []string, password string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})

	i := 0
	next := func() string {
		if i >= len(lines) {
			return ""
		}
		line := lines[i]
		i++
		return line
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ io.Writer) (string, error) { return password, nil }
}

// ---- auth commands ----

func TestRegisterCommand_Success(t *testing.T) {
	client := &fakeClient{
		ObtainRet:  api.TokenPair{Access: "acc", Refresh: "ref"},
		ProfileRet: &models.User{ID: 1, Email: "alice@example.com", FirstName: "Alice"},
	}
	app, out := newTestApp(t, client)
	stubInputs(t, []string{"alice@example.com", "Alice", ""}, "s3cret")

	app.Register(context.Background())

	require.Contains(t, out.String(), "Welcome, Alice!")
	require.True(t, app.session.Authenticated())
}

func TestLoginCommand_Failure(t *testing.T) {
	client := &fakeClient{ObtainErr: &api.ValidationError{Detail: "No active account"}}
	app, out := newTestApp(t, client)
	stubInputs(t, []string{"alice@example.com"}, "wrong")

	app.Login(context.Background())

	require.Contains(t, out.String(), "No active account")
	require.False(t, app.session.Authenticated())
}

func TestLogoutCommand(t *testing.T) {
	app, out := loginTestApp(t, &fakeClient{})

	app.Logout(context.Background())

	require.Contains(t, out.String(), "Logged out.")
	require.False(t, app.session.Authenticated())
}

func TestWhoami_Anonymous(t *testing.T) {
	app, out := newTestApp(t, &fakeClient{})

	app.whoami(context.Background())

	require.Contains(t, out.String(), "Not logged in.")
}

func TestWhoami_ShowsCapabilities(t *testing.T) {
	client := &fakeClient{PermsRet: api.Permissions{
		CanCreateContent: true, IsAdmin: false, Role: models.RoleWriter,
	}}
	app, out := loginTestApp(t, client)

	app.whoami(context.Background())

	require.Contains(t, out.String(), "alice@example.com")
	require.Contains(t, out.String(), "Role: writer")
	require.Contains(t, out.String(), "Can publish: true, admin: false")
}

func TestEditProfile_OnlyChangedFieldsSent(t *testing.T) {
	client := &fakeClient{
		UpdatedRet: &models.User{ID: 7, Email: "alice@example.com", FirstName: "Alicia"},
	}
	app, out := loginTestApp(t, client)
	stubInputs(t, []string{"Alicia", ""}, "")

	app.editProfile(context.Background())

	require.NotNil(t, client.LastUpdate.FirstName)
	require.Equal(t, "Alicia", *client.LastUpdate.FirstName)
	require.Nil(t, client.LastUpdate.LastName)
	require.Contains(t, out.String(), "Profile saved, Alicia.")
	require.Equal(t, "Alicia", app.session.User().FirstName)
}

func TestEditProfile_NothingToChange(t *testing.T) {
	client := &fakeClient{}
	app, out := loginTestApp(t, client)
	stubInputs(t, []string{"", ""}, "")

	app.editProfile(context.Background())

	require.Contains(t, out.String(), "Nothing to change.")
	require.Nil(t, client.LastUpdate.FirstName)
}

// ---- error reporting ----

func TestReportError_ExpiredSessionLogsOut(t *testing.T) {
	app, out := loginTestApp(t, &fakeClient{})

	app.reportError(context.Background(), api.ErrUnauthorized)

	require.Contains(t, out.String(), "session has expired")
	require.False(t, app.session.Authenticated())
}

func TestReportError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"forbidden", api.ErrForbidden, "do not have permission"},
		{"not found", api.ErrNotFound, "Not found."},
		{"unreachable", api.ErrUnavailable, "unreachable"},
		{"validation", &api.ValidationError{Detail: "title is required"}, "title is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, out := newTestApp(t, &fakeClient{})
			app.reportError(context.Background(), tt.err)
			require.Contains(t, out.String(), tt.want)
		})
	}
}

// ---- status line ----

func TestGetStatus(t *testing.T) {
	ctx := context.Background()

	app, _ := newTestApp(t, &fakeClient{})
	require.Equal(t, "", app.getStatus())

	app.setMode(ctx, ModeOffline)
	require.Equal(t, "(offline)", app.getStatus())

	app, _ = loginTestApp(t, &fakeClient{})
	app.setMode(ctx, ModeOnline)
	require.Equal(t, "(alice@example.com online)", app.getStatus())
}

func TestMode_ConcurrentWatcherAndPrompt(t *testing.T) {
	app, _ := newTestApp(t, &fakeClient{})
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			app.setMode(ctx, ModeOnline)
			app.setMode(ctx, ModeOffline)
		}
	}()
	for i := 0; i < 500; i++ {
		_ = app.getStatus()
	}
	<-done

	require.Equal(t, ModeOffline, app.currentMode())
}
