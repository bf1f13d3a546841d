package infra_postgres_movie

import (
	"database/sql"

	"github.com/humanbelnik/cinegraph/internal/model"
)

type MovieDB struct {
	ID         int64          `db:"movie_id"`
	Title      string         `db:"title"`
	Genres     []byte         `db:"genres"`
	Summary    string         `db:"summary"`
	Rating     float64        `db:"rating"`
	Year       int            `db:"year"`
	WatchCount int            `db:"watch_count"`
	PosterURL  sql.NullString `db:"poster_url"`
	TrailerURL sql.NullString `db:"trailer_url"`
}

func (m *MovieDB) ToDomain() model.Movie {
	return model.Movie{
		ID:         m.ID,
		Title:      m.Title,
		Genres:     model.ParseGenres(m.Genres),
		Summary:    summaryOrDefault(m.Summary),
		Rating:     m.Rating,
		Year:       m.Year,
		WatchCount: m.WatchCount,
		PosterURL:  nullable(m.PosterURL),
		TrailerURL: nullable(m.TrailerURL),
	}
}

type ScoredMovieDB struct {
	ID        int64          `db:"movie_id"`
	Title     string         `db:"title"`
	Genres    []byte         `db:"genres"`
	Summary   string         `db:"summary"`
	Rating    float64        `db:"rating"`
	PosterURL sql.NullString `db:"poster_url"`
}

func (m *ScoredMovieDB) ToDomain(score float64) model.ScoredMovie {
	return model.ScoredMovie{
		ID:        m.ID,
		Title:     m.Title,
		Summary:   m.Summary,
		Genres:    model.ParseGenres(m.Genres),
		Rating:    m.Rating,
		PosterURL: nullable(m.PosterURL),
		Score:     score,
	}
}

type posterDB struct {
	MovieID int64  `db:"movie_id"`
	URL     string `db:"asset_url"`
}

func summaryOrDefault(s string) string {
	if s == "" {
		return model.DefaultSummary
	}
	return s
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
