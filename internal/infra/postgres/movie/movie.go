package infra_postgres_movie

import (
	"context"
	"fmt"
	"strings"

	infra_pg_tables "github.com/humanbelnik/cinegraph/internal/infra/postgres/tables"
	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/jmoiron/sqlx"
)

// TextMatchScore is the score given to substring matches.
const TextMatchScore = 0.5

type Repository struct {
	db *sqlx.DB
	t  infra_pg_tables.Names
}

func New(db *sqlx.DB, schema string) *Repository {
	return &Repository{db: db, t: infra_pg_tables.New(schema)}
}

// LikePattern builds a case-insensitive substring pattern with LIKE
// metacharacters escaped.
func LikePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}

func (r *Repository) searchClause(search string, argPos int) (string, []any) {
	if search == "" {
		return "", nil
	}
	return fmt.Sprintf("WHERE (m.title ILIKE $%d OR m.summary ILIKE $%d)", argPos, argPos),
		[]any{LikePattern(search)}
}

func (r *Repository) PageWithMedia(ctx context.Context, q model.PageQuery) ([]model.Movie, error) {
	where, args := r.searchClause(q.Search, 3)
	query := fmt.Sprintf(`
		SELECT m.movie_id, m.title, m.genres,
			COALESCE(m.summary, '') AS summary,
			COALESCE(m.rating, 0) AS rating,
			COALESCE(m.year, %d) AS year,
			(SELECT COUNT(*) FROM %s w WHERE w.movie_id = m.movie_id) AS watch_count,
			p.asset_url AS poster_url,
			tr.asset_url AS trailer_url
		FROM %s m
		LEFT JOIN LATERAL (
			SELECT asset_url FROM %s
			WHERE movie_id = m.movie_id AND asset_type = 'poster_url' LIMIT 1
		) p ON true
		LEFT JOIN LATERAL (
			SELECT asset_url FROM %s
			WHERE movie_id = m.movie_id AND asset_type = 'trailer_url' LIMIT 1
		) tr ON true
		%s
		ORDER BY m.movie_id
		LIMIT $1 OFFSET $2`,
		model.DefaultYear, r.t.Watched, r.t.Movies, r.t.Media, r.t.Media, where)

	var moviesDB []MovieDB
	err := r.db.SelectContext(ctx, &moviesDB, query, append([]any{q.Limit, q.Offset}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies with media: %w", err)
	}
	return toDomain(moviesDB), nil
}

func (r *Repository) Page(ctx context.Context, q model.PageQuery) ([]model.Movie, error) {
	where, args := r.searchClause(q.Search, 3)
	query := fmt.Sprintf(`
		SELECT m.movie_id, m.title, m.genres,
			COALESCE(m.summary, '') AS summary,
			COALESCE(m.rating, 0) AS rating,
			COALESCE(m.year, %d) AS year,
			(SELECT COUNT(*) FROM %s w WHERE w.movie_id = m.movie_id) AS watch_count
		FROM %s m
		%s
		ORDER BY m.movie_id
		LIMIT $1 OFFSET $2`,
		model.DefaultYear, r.t.Watched, r.t.Movies, where)

	var moviesDB []MovieDB
	err := r.db.SelectContext(ctx, &moviesDB, query, append([]any{q.Limit, q.Offset}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	return toDomain(moviesDB), nil
}

func (r *Repository) Count(ctx context.Context, search string) (int, error) {
	where, args := r.searchClause(search, 1)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s m %s`, r.t.Movies, where)

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return total, nil
}

// SearchText reads the movies table only, so it keeps working when the media
// table is missing. Hits carry no poster.
func (r *Repository) SearchText(ctx context.Context, text string, k int) ([]model.ScoredMovie, error) {
	query := fmt.Sprintf(`
		SELECT m.movie_id, m.title, m.genres,
			COALESCE(m.summary, '') AS summary,
			COALESCE(m.rating, 0) AS rating,
			NULL::text AS poster_url
		FROM %s m
		WHERE m.title ILIKE $1 OR m.summary ILIKE $1
		ORDER BY m.movie_id
		LIMIT $2`, r.t.Movies)

	var rows []ScoredMovieDB
	if err := r.db.SelectContext(ctx, &rows, query, LikePattern(text), k); err != nil {
		return nil, fmt.Errorf("failed to search movies by text: %w", err)
	}

	out := make([]model.ScoredMovie, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain(TextMatchScore)
	}
	return out, nil
}

// LoadByIDs returns the movies with the given ids, in no particular order.
func (r *Repository) LoadByIDs(ctx context.Context, IDs []model.MovieID) ([]model.ScoredMovie, error) {
	if len(IDs) == 0 {
		return []model.ScoredMovie{}, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT m.movie_id, m.title, m.genres,
			COALESCE(m.summary, '') AS summary,
			COALESCE(m.rating, 0) AS rating,
			p.asset_url AS poster_url
		FROM %s m
		LEFT JOIN LATERAL (
			SELECT asset_url FROM %s
			WHERE movie_id = m.movie_id AND asset_type = 'poster_url' LIMIT 1
		) p ON true
		WHERE m.movie_id IN (?)`, r.t.Movies, r.t.Media), IDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	query = r.db.Rebind(query)
	var rows []ScoredMovieDB
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query movies by ids: %w", err)
	}

	out := make([]model.ScoredMovie, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain(0)
	}
	return out, nil
}

// Posters returns the poster url of every listed movie that has one.
func (r *Repository) Posters(ctx context.Context, IDs []model.MovieID) (map[model.MovieID]string, error) {
	posters := make(map[model.MovieID]string, len(IDs))
	if len(IDs) == 0 {
		return posters, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT movie_id, asset_url
		FROM %s
		WHERE asset_type = 'poster_url' AND movie_id IN (?)`, r.t.Media), IDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	query = r.db.Rebind(query)
	var rows []posterDB
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query posters: %w", err)
	}

	for _, row := range rows {
		if _, ok := posters[row.MovieID]; !ok {
			posters[row.MovieID] = row.URL
		}
	}
	return posters, nil
}

func toDomain(moviesDB []MovieDB) []model.Movie {
	movies := make([]model.Movie, len(moviesDB))
	for i := range moviesDB {
		movies[i] = moviesDB[i].ToDomain()
	}
	return movies
}
