package infra_postgres_customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	infra_pg_tables "github.com/humanbelnik/cinegraph/internal/infra/postgres/tables"
	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

type Repository struct {
	db *sqlx.DB
	t  infra_pg_tables.Names
}

func New(db *sqlx.DB, schema string) *Repository {
	return &Repository{db: db, t: infra_pg_tables.New(schema)}
}

func (r *Repository) List(ctx context.Context) ([]model.Customer, error) {
	query := fmt.Sprintf(`
		SELECT c.cust_id, c.firstname, c.lastname, c.email,
			COUNT(w.movie_id) AS movies_count
		FROM %s c
		LEFT JOIN %s w ON w.promo_cust_id = c.cust_id
		GROUP BY c.cust_id, c.firstname, c.lastname, c.email
		ORDER BY c.cust_id`, r.t.Customers, r.t.Watched)

	var customersDB []CustomerDB
	if err := r.db.SelectContext(ctx, &customersDB, query); err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}

	customers := make([]model.Customer, len(customersDB))
	for i := range customersDB {
		customers[i] = customersDB[i].ToDomain()
	}
	return customers, nil
}

// Create inserts c under the next free id, max(cust_id)+1 or 101 for an
// empty table, in a single statement.
func (r *Repository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (cust_id, firstname, lastname, email)
		SELECT COALESCE(MAX(cust_id), 100) + 1, $1, $2, $3 FROM %s
		RETURNING cust_id`, r.t.Customers, r.t.Customers)

	var id int64
	if err := r.db.GetContext(ctx, &id, query, c.FirstName, c.LastName, c.Email); err != nil {
		return model.Customer{}, fmt.Errorf("failed to create customer: %w", err)
	}

	c.ID = id
	c.MoviesCount = 0
	return c, nil
}

func (r *Repository) Lookup(ctx context.Context, ID model.CustomerID) (model.Customer, error) {
	query := fmt.Sprintf(`
		SELECT cust_id, firstname, lastname, email
		FROM %s
		WHERE cust_id = $1`, r.t.Customers)

	var customerDB CustomerDB
	if err := r.db.GetContext(ctx, &customerDB, query, ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Customer{}, fmt.Errorf("customer %d %w", ID, model.ErrNotFound)
		}
		return model.Customer{}, fmt.Errorf("failed to load customer: %w", err)
	}
	return customerDB.ToDomain(), nil
}

func (r *Repository) WatchExists(ctx context.Context, customerID model.CustomerID, movieID model.MovieID) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE promo_cust_id = $1 AND movie_id = $2
		)`, r.t.Watched)

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, customerID, movieID); err != nil {
		return false, fmt.Errorf("failed to check watch: %w", err)
	}
	return exists, nil
}

// InsertWatch adds the edge only when it is absent and reports
// model.ErrAlreadyExists otherwise. Two inserts racing past the NOT EXISTS
// check are settled by the unique index on (promo_cust_id, movie_id).
func (r *Repository) InsertWatch(ctx context.Context, in model.WatchInput) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (promo_cust_id, movie_id, day_id, rating_given)
		SELECT $1, $2, NOW(), $3
		WHERE NOT EXISTS (
			SELECT 1 FROM %[1]s WHERE promo_cust_id = $1 AND movie_id = $2
		)`, r.t.Watched)

	var rating sql.NullFloat64
	if in.Rating != nil {
		rating = sql.NullFloat64{Float64: *in.Rating, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, in.CustomerID, in.MovieID, rating)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case foreignKeyViolation:
				return fmt.Errorf("customer or movie %w", model.ErrNotFound)
			case uniqueViolation:
				return fmt.Errorf("watch %w", model.ErrAlreadyExists)
			}
		}
		return fmt.Errorf("failed to insert watch: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to insert watch: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("watch %w", model.ErrAlreadyExists)
	}
	return nil
}

func (r *Repository) UpdateWatchRating(ctx context.Context, customerID model.CustomerID, movieID model.MovieID, rating float64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET rating_given = $1, day_id = NOW()
		WHERE promo_cust_id = $2 AND movie_id = $3`, r.t.Watched)

	result, err := r.db.ExecContext(ctx, query, rating, customerID, movieID)
	if err != nil {
		return fmt.Errorf("failed to update watch rating: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("watch %w", model.ErrNotFound)
	}
	return nil
}

func (r *Repository) WatchedCount(ctx context.Context, ID model.CustomerID) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE promo_cust_id = $1`, r.t.Watched)

	var total int
	if err := r.db.GetContext(ctx, &total, query, ID); err != nil {
		return 0, fmt.Errorf("failed to count watched movies: %w", err)
	}
	return total, nil
}

func (r *Repository) WatchedMovieIDs(ctx context.Context, ID model.CustomerID) ([]model.MovieID, error) {
	query := fmt.Sprintf(`SELECT DISTINCT movie_id FROM %s WHERE promo_cust_id = $1`, r.t.Watched)

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, ID); err != nil {
		return nil, fmt.Errorf("failed to query watched movie ids: %w", err)
	}
	return ids, nil
}

// WatchedMovies returns every movie the customer watched, by movie id.
func (r *Repository) WatchedMovies(ctx context.Context, ID model.CustomerID) ([]model.MovieRef, error) {
	query := fmt.Sprintf(`
		SELECT m.movie_id, m.title, m.genres
		FROM %s w
		JOIN %s m ON m.movie_id = w.movie_id
		WHERE w.promo_cust_id = $1
		ORDER BY m.movie_id`, r.t.Watched, r.t.Movies)

	var rows []watchedMovieDB
	if err := r.db.SelectContext(ctx, &rows, query, ID); err != nil {
		return nil, fmt.Errorf("failed to query watched movies: %w", err)
	}

	movies := make([]model.MovieRef, len(rows))
	for i := range rows {
		movies[i] = rows[i].ToDomain()
	}
	return movies, nil
}

// RecentTitles returns up to limit titles, most recently watched first.
func (r *Repository) RecentTitles(ctx context.Context, ID model.CustomerID, limit int) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT m.title
		FROM %s w
		JOIN %s m ON m.movie_id = w.movie_id
		WHERE w.promo_cust_id = $1
		ORDER BY w.day_id DESC NULLS LAST, m.movie_id
		LIMIT $2`, r.t.Watched, r.t.Movies)

	var titles []string
	if err := r.db.SelectContext(ctx, &titles, query, ID, limit); err != nil {
		return nil, fmt.Errorf("failed to query watched titles: %w", err)
	}
	return titles, nil
}
