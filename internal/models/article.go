package models

import "time"

// Tag labels articles and doubles as a user interest.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Article is a published blog post. AvgRating is nil until the article has
// been rated at least once. Continent is only set on articles flagged as
// destinations.
type Article struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Image         string     `json:"image,omitempty"`
	Author        Author     `json:"author"`
	Tags          []Tag      `json:"tags"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	AvgRating     *float64   `json:"avg_rating"`
	RatingsCount  int        `json:"ratings_count"`
	IsDestination bool       `json:"is_destination"`
	Continent     *int64     `json:"continent,omitempty"`
	ContinentName string     `json:"continent_name,omitempty"`
}

// Comment is a reader comment attached to an article.
type Comment struct {
	ID         int64     `json:"id"`
	User       Author    `json:"user"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Rating is a single 1..5 score a user gave an article. The server keeps
// at most one rating per (user, article) pair and overwrites on re-rate.
type Rating struct {
	ID        int64     `json:"id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Recommendation pairs an article with a relevance score in (0, 1],
// computed server-side from the user's interests and community ratings.
type Recommendation struct {
	ID        int64     `json:"id"`
	Article   Article   `json:"article"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}
