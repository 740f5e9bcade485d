package api

import (
	"context"

	"trotamundos/internal/models"
)

// TokenPair is the credential pair issued by the token endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Permissions is the raw capability payload of the permissions endpoint.
// Missing fields decode to their zero value, which keeps the mapping
// fail-closed.
type Permissions struct {
	CanCreateContent bool   `json:"can_create_content"`
	IsAdmin          bool   `json:"is_admin"`
	Role             string `json:"role"`
}

// Registration is the payload of the registration endpoint. Name fields
// are optional.
type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ProfileUpdate carries partial profile changes. Nil fields are left
// untouched on the server.
type ProfileUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// ArticleQuery narrows an article listing. Search matches title, content
// and tag names; Tags filters by tag slug (any match).
type ArticleQuery struct {
	Search string
	Tags   []string
}

// ArticleDraft is the write payload for creating or updating an article.
// TagIDs references existing tags; NewTags are created on the fly. A draft
// flagged as a destination must reference a continent.
type ArticleDraft struct {
	Title         string   `json:"title,omitempty"`
	Content       string   `json:"content,omitempty"`
	TagIDs        []int64  `json:"tag_ids,omitempty"`
	NewTags       []string `json:"new_tags,omitempty"`
	IsDestination bool     `json:"is_destination,omitempty"`
	Continent     *int64   `json:"continent,omitempty"`
}

// Client is the contract with the remote travel-blog API. There is exactly
// one authenticated-request path behind it, so bearer injection, expiry
// handling and the refresh exchange happen in one place for every caller.
//
// Expected failure modes come back as sentinel errors (ErrUnavailable,
// ErrUnauthorized, ErrForbidden, ErrNotFound) or *ValidationError; match
// with errors.Is/errors.As. All methods honor context cancellation.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	// Auth and profile.
	ObtainToken(ctx context.Context, email, password string) (TokenPair, error)
	Register(ctx context.Context, reg Registration) error
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error)
	Permissions(ctx context.Context) (Permissions, error)

	// Articles.
	Articles(ctx context.Context, q ArticleQuery) ([]models.Article, error)
	Article(ctx context.Context, slug string) (*models.Article, error)
	CreateArticle(ctx context.Context, draft ArticleDraft) (*models.Article, error)
	UpdateArticle(ctx context.Context, slug string, draft ArticleDraft) (*models.Article, error)
	DeleteArticle(ctx context.Context, slug string) error
	RateArticle(ctx context.Context, slug string, score int) (*models.Rating, error)
	Comments(ctx context.Context, slug string) ([]models.Comment, error)
	AddComment(ctx context.Context, slug, content string) (*models.Comment, error)
	Tags(ctx context.Context) ([]models.Tag, error)

	// Destinations.
	Destinations(ctx context.Context) ([]models.Destination, error)
	Destination(ctx context.Context, slug string) (*models.Destination, error)
	Continents(ctx context.Context) ([]models.Continent, error)
	DestinationsByContinent(ctx context.Context) ([]models.ContinentGroup, error)

	// Personalization.
	Recommendations(ctx context.Context) ([]models.Recommendation, error)
	Interests(ctx context.Context) (*models.Interests, error)
	UpdateInterests(ctx context.Context, tagIDs []int64) (*models.Interests, error)

	// Administration.
	Users(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, userID int64, role string) (*models.User, error)
}
