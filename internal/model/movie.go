package model

import (
	"sort"

	"github.com/goccy/go-json"
)

const (
	DefaultYear    = 2024
	DefaultSummary = "No description"
)

type MovieID = int64

// Genres maps a genre name to the weight or flag stored with it.
type Genres map[string]any

// ParseGenres decodes the stored genre blob. Anything that is not a flat
// JSON object yields an empty mapping.
func ParseGenres(raw []byte) Genres {
	g := Genres{}
	if len(raw) == 0 {
		return g
	}
	if err := json.Unmarshal(raw, &g); err != nil {
		return Genres{}
	}
	return g
}

// Keys returns at most n genre names in lexical order.
func (g Genres) Keys(n int) []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if n >= 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

type Movie struct {
	ID         MovieID
	Title      string
	Genres     Genres
	Summary    string
	Rating     float64
	Year       int
	WatchCount int

	// Nil when the asset is missing or media was not joined.
	PosterURL  *string
	TrailerURL *string
}

type ScoredMovie struct {
	ID        MovieID
	Title     string
	Summary   string
	Genres    Genres
	Rating    float64
	PosterURL *string
	Score     float64

	// Snippet is Summary cut for display.
	Snippet string
}

type SearchResult struct {
	Query  string
	Method Method
	Hits   []ScoredMovie
}

// MovieRef is a movie as it appears in graph views.
type MovieRef struct {
	ID     MovieID
	Title  string
	Genres Genres
}

type PageQuery struct {
	Limit  int
	Offset int
	Search string
}

type Page struct {
	Movies    []Movie
	Total     int
	WithMedia bool
}

type Embedding []float32
