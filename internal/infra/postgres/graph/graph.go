// Package infra_postgres_graph answers the watched-graph pattern queries in
// two interchangeable ways: Cypher over an Apache AGE property graph and
// self-joins over the flat watch history. Both return identical shapes;
// each strategy supplies only the CTE that walks the graph and shares the
// outer projection and ordering.
package infra_postgres_graph

import (
	"context"
	"fmt"

	infra_pg_tables "github.com/humanbelnik/cinegraph/internal/infra/postgres/tables"
	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/jmoiron/sqlx"
)

type candidateDB struct {
	ID           int64   `db:"movie_id"`
	Title        string  `db:"title"`
	Summary      string  `db:"summary"`
	Rating       float64 `db:"rating"`
	Genres       []byte  `db:"genres"`
	SimilarUsers int     `db:"similar_users"`
}

type movieRefDB struct {
	ID     int64  `db:"movie_id"`
	Title  string `db:"title"`
	Genres []byte `db:"genres"`
}

type similarDB struct {
	ID           int64  `db:"cust_id"`
	FirstName    string `db:"firstname"`
	LastName     string `db:"lastname"`
	CommonMovies int    `db:"common_movies"`
}

// CTE bodies. Each yields the columns named in the outer queries below.
type patterns struct {
	candidates string // movie_id, similar_users
	watched    string // movie_id
	similar    string // cust_id, common_movies
}

type walker struct {
	db *sqlx.DB
	t  infra_pg_tables.Names
	p  patterns
}

// candidates never returns a movie the customer at custPos has watched, so
// the limit applies to unwatched movies only.
func (w *walker) candidates(ctx context.Context, args []any, limitPos, custPos int) ([]model.Candidate, error) {
	query := fmt.Sprintf(`
		WITH peers AS (%[1]s)
		SELECT m.movie_id, m.title,
			COALESCE(m.summary, '') AS summary,
			COALESCE(m.rating, 0) AS rating,
			m.genres, p.similar_users
		FROM peers p
		JOIN %[2]s m ON m.movie_id = p.movie_id
		WHERE NOT EXISTS (
			SELECT 1 FROM %[3]s w
			WHERE w.promo_cust_id = $%[5]d AND w.movie_id = p.movie_id
		)
		ORDER BY p.similar_users DESC, COALESCE(m.rating, 0) DESC, m.movie_id
		LIMIT $%[4]d`, w.p.candidates, w.t.Movies, w.t.Watched, limitPos, custPos)

	var rows []candidateDB
	if err := w.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]model.Candidate, len(rows))
	for i, r := range rows {
		out[i] = model.Candidate{
			ID:           r.ID,
			Title:        r.Title,
			Summary:      r.Summary,
			Rating:       r.Rating,
			Genres:       model.ParseGenres(r.Genres),
			SimilarUsers: r.SimilarUsers,
		}
	}
	return out, nil
}

func (w *walker) watched(ctx context.Context, args []any, limitPos int) ([]model.MovieRef, error) {
	query := fmt.Sprintf(`
		WITH seen AS (%s)
		SELECT m.movie_id, m.title, m.genres
		FROM seen s
		JOIN %s m ON m.movie_id = s.movie_id
		ORDER BY m.movie_id
		LIMIT $%d`, w.p.watched, w.t.Movies, limitPos)

	var rows []movieRefDB
	if err := w.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]model.MovieRef, len(rows))
	for i, r := range rows {
		out[i] = model.MovieRef{ID: r.ID, Title: r.Title, Genres: model.ParseGenres(r.Genres)}
	}
	return out, nil
}

func (w *walker) similar(ctx context.Context, args []any, limitPos int) ([]model.SimilarCustomer, error) {
	query := fmt.Sprintf(`
		WITH peers AS (%s)
		SELECT c.cust_id, c.firstname, c.lastname, p.common_movies
		FROM peers p
		JOIN %s c ON c.cust_id = p.cust_id
		ORDER BY p.common_movies DESC, c.cust_id
		LIMIT $%d`, w.p.similar, w.t.Customers, limitPos)

	var rows []similarDB
	if err := w.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]model.SimilarCustomer, len(rows))
	for i, r := range rows {
		out[i] = model.SimilarCustomer{
			ID:           r.ID,
			Name:         r.FirstName + " " + r.LastName,
			CommonMovies: r.CommonMovies,
		}
	}
	return out, nil
}
