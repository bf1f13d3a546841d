// Package infra_pg_tables resolves the store's table names inside the
// configured schema.
package infra_pg_tables

import "github.com/lib/pq"

type Names struct {
	Movies    string
	Customers string
	Watched   string
	Media     string
	Vectors   string
}

func New(schema string) Names {
	if schema == "" {
		schema = "public"
	}
	q := pq.QuoteIdentifier(schema) + "."
	return Names{
		Movies:    q + "movies",
		Customers: q + "movies_customer",
		Watched:   q + "watched_movie",
		Media:     q + "media_assets",
		Vectors:   q + "movie_vectors",
	}
}
