package models

import "time"

// Continent groups destinations geographically.
type Continent struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Destination is a travel destination listing. Continent may be nil for
// destinations that were never assigned one.
type Destination struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Country     string     `json:"country"`
	City        string     `json:"city"`
	Continent   *Continent `json:"continent"`
	Image       string     `json:"image,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ContinentGroup is the by-continent listing: a continent together with
// every destination assigned to it.
type ContinentGroup struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Destinations []Destination `json:"destinations"`
}

// Interests is the profile payload of the interests endpoint: the owning
// user plus the tags they follow.
type Interests struct {
	ID        int64 `json:"id"`
	User      User  `json:"user"`
	Interests []Tag `json:"interests"`
}
