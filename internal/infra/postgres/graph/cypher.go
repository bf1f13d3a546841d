package infra_postgres_graph

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/goccy/go-json"
	infra_pg_tables "github.com/humanbelnik/cinegraph/internal/infra/postgres/tables"
	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrInvalidGraphName = errors.New("invalid graph name")

// AGE requires the graph name and the Cypher text to be literals, so the
// name is spliced into the statement and must be a plain identifier.
var graphNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// PropertyGraph runs Cypher patterns through Apache AGE. The graph has
// Customer{cust_id} and Movie{movie_id} vertices joined by WATCHED edges.
// Any failure (extension not loaded, graph missing) surfaces as an error
// for the caller to fall back on.
type PropertyGraph struct {
	w       walker
	nameErr error
}

func NewPropertyGraph(db *sqlx.DB, schema, graphName string) *PropertyGraph {
	g := &PropertyGraph{}
	if !graphNameRe.MatchString(graphName) {
		g.nameErr = fmt.Errorf("%w: %q", ErrInvalidGraphName, graphName)
	}

	cypher := func(pattern, columns string) string {
		return fmt.Sprintf(`SELECT * FROM ag_catalog.cypher('%s', $$ %s $$, $1) AS g(%s)`, graphName, pattern, columns)
	}

	g.w = walker{db: db, t: infra_pg_tables.New(schema), p: patterns{
		candidates: fmt.Sprintf(`
			SELECT (g.movie_id::text)::bigint AS movie_id, (g.similar_users::text)::int AS similar_users
			FROM (%s) g`, cypher(
			`MATCH (c:Customer {cust_id: $cust_id})-[:WATCHED]->(:Movie)<-[:WATCHED]-(peer:Customer)-[:WATCHED]->(rec:Movie)
			WHERE peer.cust_id <> $cust_id
			RETURN rec.movie_id, count(DISTINCT peer)`,
			`movie_id ag_catalog.agtype, similar_users ag_catalog.agtype`)),
		watched: fmt.Sprintf(`
			SELECT (g.movie_id::text)::bigint AS movie_id
			FROM (%s) g`, cypher(
			`MATCH (c:Customer {cust_id: $cust_id})-[:WATCHED]->(m:Movie)
			RETURN DISTINCT m.movie_id`,
			`movie_id ag_catalog.agtype`)),
		similar: fmt.Sprintf(`
			SELECT (g.cust_id::text)::bigint AS cust_id, (g.common_movies::text)::int AS common_movies
			FROM (%s) g`, cypher(
			`MATCH (c:Customer {cust_id: $cust_id})-[:WATCHED]->(m:Movie)<-[:WATCHED]-(peer:Customer)
			WHERE peer.cust_id <> $cust_id
			RETURN peer.cust_id, count(DISTINCT m)`,
			`cust_id ag_catalog.agtype, common_movies ag_catalog.agtype`)),
	}}
	return g
}

func params(ID model.CustomerID) (string, error) {
	b, err := json.Marshal(map[string]int64{"cust_id": ID})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (g *PropertyGraph) args(ID model.CustomerID, limit int) ([]any, error) {
	if g.nameErr != nil {
		return nil, g.nameErr
	}
	p, err := params(ID)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cypher params: %w", err)
	}
	return []any{p, limit}, nil
}

func (g *PropertyGraph) Candidates(ctx context.Context, ID model.CustomerID, limit int) ([]model.Candidate, error) {
	args, err := g.args(ID, limit)
	if err != nil {
		return nil, err
	}
	out, err := g.w.candidates(ctx, append(args, ID), 2, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to match recommendation candidates: %w", err)
	}
	return out, nil
}

func (g *PropertyGraph) WatchedMovies(ctx context.Context, ID model.CustomerID, limit int) ([]model.MovieRef, error) {
	args, err := g.args(ID, limit)
	if err != nil {
		return nil, err
	}
	out, err := g.w.watched(ctx, args, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to match watched movies: %w", err)
	}
	return out, nil
}

func (g *PropertyGraph) SimilarCustomers(ctx context.Context, ID model.CustomerID, limit int) ([]model.SimilarCustomer, error) {
	args, err := g.args(ID, limit)
	if err != nil {
		return nil, err
	}
	out, err := g.w.similar(ctx, args, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to match similar customers: %w", err)
	}
	return out, nil
}
