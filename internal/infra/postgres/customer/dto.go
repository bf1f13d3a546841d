package infra_postgres_customer

import "github.com/humanbelnik/cinegraph/internal/model"

type CustomerDB struct {
	ID          int64  `db:"cust_id"`
	FirstName   string `db:"firstname"`
	LastName    string `db:"lastname"`
	Email       string `db:"email"`
	MoviesCount int    `db:"movies_count"`
}

func (c *CustomerDB) ToDomain() model.Customer {
	return model.Customer{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		MoviesCount: c.MoviesCount,
	}
}

type watchedMovieDB struct {
	ID     int64  `db:"movie_id"`
	Title  string `db:"title"`
	Genres []byte `db:"genres"`
}

func (w *watchedMovieDB) ToDomain() model.MovieRef {
	return model.MovieRef{
		ID:     w.ID,
		Title:  w.Title,
		Genres: model.ParseGenres(w.Genres),
	}
}
