package infra_postgres_graph

import (
	"context"
	"fmt"

	infra_pg_tables "github.com/humanbelnik/cinegraph/internal/infra/postgres/tables"
	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/jmoiron/sqlx"
)

// JoinGraph walks the watch history with self-joins. It works on any
// deployment that has the flat tables.
type JoinGraph struct {
	w walker
}

func NewJoinGraph(db *sqlx.DB, schema string) *JoinGraph {
	t := infra_pg_tables.New(schema)
	return &JoinGraph{w: walker{db: db, t: t, p: patterns{
		candidates: fmt.Sprintf(`
			SELECT w3.movie_id, COUNT(DISTINCT w2.promo_cust_id) AS similar_users
			FROM %[1]s w1
			JOIN %[1]s w2 ON w2.movie_id = w1.movie_id AND w2.promo_cust_id <> w1.promo_cust_id
			JOIN %[1]s w3 ON w3.promo_cust_id = w2.promo_cust_id
			WHERE w1.promo_cust_id = $1
				AND w3.movie_id NOT IN (SELECT movie_id FROM %[1]s WHERE promo_cust_id = $1)
			GROUP BY w3.movie_id`, t.Watched),
		watched: fmt.Sprintf(`
			SELECT DISTINCT movie_id FROM %s WHERE promo_cust_id = $1`, t.Watched),
		similar: fmt.Sprintf(`
			SELECT w2.promo_cust_id AS cust_id, COUNT(DISTINCT w2.movie_id) AS common_movies
			FROM %[1]s w1
			JOIN %[1]s w2 ON w2.movie_id = w1.movie_id AND w2.promo_cust_id <> w1.promo_cust_id
			WHERE w1.promo_cust_id = $1
			GROUP BY w2.promo_cust_id`, t.Watched),
	}}}
}

func (g *JoinGraph) Candidates(ctx context.Context, ID model.CustomerID, limit int) ([]model.Candidate, error) {
	out, err := g.w.candidates(ctx, []any{ID, limit}, 2, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to join recommendation candidates: %w", err)
	}
	return out, nil
}

func (g *JoinGraph) WatchedMovies(ctx context.Context, ID model.CustomerID, limit int) ([]model.MovieRef, error) {
	out, err := g.w.watched(ctx, []any{ID, limit}, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to join watched movies: %w", err)
	}
	return out, nil
}

func (g *JoinGraph) SimilarCustomers(ctx context.Context, ID model.CustomerID, limit int) ([]model.SimilarCustomer, error) {
	out, err := g.w.similar(ctx, []any{ID, limit}, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to join similar customers: %w", err)
	}
	return out, nil
}
