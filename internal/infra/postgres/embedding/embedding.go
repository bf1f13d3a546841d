package infra_postgres_embedding

import (
	"context"
	"errors"
	"fmt"

	infra_pg_tables "github.com/humanbelnik/cinegraph/internal/infra/postgres/tables"
	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"
)

var ErrInvalidK = errors.New("k must be positive")

type Driver struct {
	db *sqlx.DB
	t  infra_pg_tables.Names
}

func New(db *sqlx.DB, schema string) *Driver {
	return &Driver{db: db, t: infra_pg_tables.New(schema)}
}

type neighbourDB struct {
	MovieID   int64   `db:"movie_id"`
	Title     string  `db:"title"`
	Genres    []byte  `db:"genres"`
	Summary   string  `db:"summary"`
	Rating    float64 `db:"rating"`
	PosterURL *string `db:"poster_url"`
	Distance  float64 `db:"distance"`
}

// Nearest ranks movies by cosine distance to e. Score is 1 - distance
// clamped to [0, 1].
func (d *Driver) Nearest(ctx context.Context, e model.Embedding, k int) ([]model.ScoredMovie, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}

	query := fmt.Sprintf(`
		SELECT m.movie_id, m.title, m.genres,
			COALESCE(m.summary, '') AS summary,
			COALESCE(m.rating, 0) AS rating,
			p.asset_url AS poster_url,
			v.embedding <=> $1 AS distance
		FROM %s v
		JOIN %s m ON m.movie_id = v.movie_id
		LEFT JOIN LATERAL (
			SELECT asset_url FROM %s
			WHERE movie_id = m.movie_id AND asset_type = 'poster_url' LIMIT 1
		) p ON true
		ORDER BY distance
		LIMIT $2`, d.t.Vectors, d.t.Movies, d.t.Media)

	var rows []neighbourDB
	if err := d.db.SelectContext(ctx, &rows, query, pgvector.NewVector(e), k); err != nil {
		return nil, fmt.Errorf("failed to query nearest movies: %w", err)
	}

	out := make([]model.ScoredMovie, len(rows))
	for i, row := range rows {
		out[i] = model.ScoredMovie{
			ID:        row.MovieID,
			Title:     row.Title,
			Summary:   row.Summary,
			Genres:    model.ParseGenres(row.Genres),
			Rating:    row.Rating,
			PosterURL: row.PosterURL,
			Score:     ScoreFromDistance(row.Distance),
		}
	}
	return out, nil
}

func ScoreFromDistance(distance float64) float64 {
	return min(max(1-distance, 0), 1)
}
