package usecase_graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/humanbelnik/cinegraph/internal/service/fallback"
)

var (
	ErrFailedToLoadWatched   = errors.New("failed to load watched movies")
	ErrFailedToRecommend     = errors.New("failed to build recommendations")
	ErrFailedToLoadNeighbors = errors.New("failed to load similar customers")
	ErrFailedToLoadCustomer  = errors.New("failed to load customer")
)

const (
	DefaultRecommendations = 5
	DefaultGraphLimit      = 20
	DefaultNetworkDepth    = 2
	DefaultNetworkLimit    = 50
	MaxGraphLimit          = 500

	similarCustomers = 5
	compareSample    = 5
	summaryLength    = 150
)

// Traversal walks the customer-watched-movie graph. The property graph and
// the flat join implementations are interchangeable.
//
//go:generate mockery --name=Traversal --output=./mocks/graph/traversal --filename=traversal.go
type Traversal interface {
	Candidates(ctx context.Context, ID model.CustomerID, limit int) ([]model.Candidate, error)
	WatchedMovies(ctx context.Context, ID model.CustomerID, limit int) ([]model.MovieRef, error)
	SimilarCustomers(ctx context.Context, ID model.CustomerID, limit int) ([]model.SimilarCustomer, error)
}

//go:generate mockery --name=CustomerRepository --output=./mocks/graph/customer --filename=customer.go
type CustomerRepository interface {
	Lookup(ctx context.Context, ID model.CustomerID) (model.Customer, error)
	WatchedCount(ctx context.Context, ID model.CustomerID) (int, error)
	WatchedMovieIDs(ctx context.Context, ID model.CustomerID) ([]model.MovieID, error)
	WatchedMovies(ctx context.Context, ID model.CustomerID) ([]model.MovieRef, error)
}

//go:generate mockery --name=PosterRepository --output=./mocks/graph/poster --filename=poster.go
type PosterRepository interface {
	Posters(ctx context.Context, IDs []model.MovieID) (map[model.MovieID]string, error)
}

type PosterResolver interface {
	Resolve(ctx context.Context, raw string) string
}

type Usecase struct {
	graph     Traversal
	join      Traversal
	customers CustomerRepository
	posters   PosterRepository
	resolver  PosterResolver
	logger    *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func WithPosterResolver(r PosterResolver) Option {
	return func(u *Usecase) {
		u.resolver = r
	}
}

type passthrough struct{}

func (passthrough) Resolve(_ context.Context, raw string) string { return raw }

// New wires graph as the preferred traversal and join as its fallback.
func New(
	graph Traversal,
	join Traversal,
	customers CustomerRepository,
	posters PosterRepository,
	opts ...Option,
) *Usecase {
	u := &Usecase{
		graph:     graph,
		join:      join,
		customers: customers,
		posters:   posters,
		resolver:  passthrough{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) candidates(ctx context.Context, ID model.CustomerID, limit int) ([]model.Candidate, model.Method, error) {
	return fallback.Run(ctx, u.logger, "graph.recommendations",
		fallback.Of(model.MethodPropertyGraph, func(ctx context.Context) ([]model.Candidate, error) {
			return u.graph.Candidates(ctx, ID, limit)
		}),
		fallback.Of(model.MethodSQLFallback, func(ctx context.Context) ([]model.Candidate, error) {
			return u.join.Candidates(ctx, ID, limit)
		}),
	)
}

func (u *Usecase) watched(ctx context.Context, ID model.CustomerID, limit int) ([]model.MovieRef, model.Method, error) {
	return fallback.Run(ctx, u.logger, "graph.watched",
		fallback.Of(model.MethodPropertyGraph, func(ctx context.Context) ([]model.MovieRef, error) {
			return u.graph.WatchedMovies(ctx, ID, limit)
		}),
		fallback.Of(model.MethodSQLFallback, func(ctx context.Context) ([]model.MovieRef, error) {
			return u.join.WatchedMovies(ctx, ID, limit)
		}),
	)
}

func (u *Usecase) similar(ctx context.Context, ID model.CustomerID, limit int) ([]model.SimilarCustomer, model.Method, error) {
	return fallback.Run(ctx, u.logger, "graph.similar",
		fallback.Of(model.MethodPropertyGraph, func(ctx context.Context) ([]model.SimilarCustomer, error) {
			return u.graph.SimilarCustomers(ctx, ID, limit)
		}),
		fallback.Of(model.MethodSQLFallback, func(ctx context.Context) ([]model.SimilarCustomer, error) {
			return u.join.SimilarCustomers(ctx, ID, limit)
		}),
	)
}

// Recommend returns up to limit movies watched by customers who share at
// least one movie with ID, ranked by how many such customers watched them.
// Movies ID already watched are never returned.
func (u *Usecase) Recommend(ctx context.Context, ID model.CustomerID, limit int) (model.Recommendations, error) {
	if limit <= 0 {
		limit = DefaultRecommendations
	}

	watchedIDs, err := u.customers.WatchedMovieIDs(ctx, ID)
	if err != nil {
		return model.Recommendations{}, fmt.Errorf("%w: %w", ErrFailedToLoadWatched, err)
	}
	seen := make(map[model.MovieID]struct{}, len(watchedIDs))
	for _, id := range watchedIDs {
		seen[id] = struct{}{}
	}

	// Traversals exclude watched movies themselves; the spare candidates keep
	// the filter below from starving the result if one does not.
	candidates, method, err := u.candidates(ctx, ID, max(limit*2, limit+len(watchedIDs)))
	if err != nil {
		return model.Recommendations{}, fmt.Errorf("%w: %w", ErrFailedToRecommend, err)
	}

	items := make([]model.Recommendation, 0, limit)
	for _, c := range candidates {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		c.Summary = model.Truncate(c.Summary, summaryLength)
		items = append(items, model.Recommendation{Candidate: c})
		if len(items) == limit {
			break
		}
	}

	u.attachPosters(ctx, items)

	return model.Recommendations{CustomerID: ID, Method: method, Items: items}, nil
}

// attachPosters is best effort; a failed lookup leaves posters empty.
func (u *Usecase) attachPosters(ctx context.Context, items []model.Recommendation) {
	if len(items) == 0 {
		return
	}
	ids := make([]model.MovieID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	posters, err := u.posters.Posters(ctx, ids)
	if err != nil {
		u.logger.Warn("poster lookup failed", slog.String("error", err.Error()))
		return
	}
	for i := range items {
		if raw, ok := posters[items[i].ID]; ok {
			url := u.resolver.Resolve(ctx, raw)
			items[i].PosterURL = &url
		}
	}
}

// WatchedTitles returns up to limit titles from the customer's history.
func (u *Usecase) WatchedTitles(ctx context.Context, ID model.CustomerID, limit int) ([]string, model.Method, error) {
	movies, method, err := u.watched(ctx, ID, limit)
	if err != nil {
		return nil, method, fmt.Errorf("%w: %w", ErrFailedToLoadWatched, err)
	}
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	return titles, method, nil
}

func (u *Usecase) lookup(ctx context.Context, ID model.CustomerID) (model.Customer, error) {
	c, err := u.customers.Lookup(ctx, ID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Customer{}, err
		}
		return model.Customer{}, fmt.Errorf("%w: %w", ErrFailedToLoadCustomer, err)
	}
	return c, nil
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, MaxGraphLimit)
}

// CustomerGraph is the customer and the movies they watched. Total is the
// full watch count; Showing is the number of movie nodes returned.
func (u *Usecase) CustomerGraph(ctx context.Context, ID model.CustomerID, limit int) (model.CustomerGraph, error) {
	limit = clampLimit(limit, DefaultGraphLimit)

	c, err := u.lookup(ctx, ID)
	if err != nil {
		return model.CustomerGraph{}, err
	}

	total, err := u.customers.WatchedCount(ctx, ID)
	if err != nil {
		return model.CustomerGraph{}, fmt.Errorf("%w: %w", ErrFailedToLoadWatched, err)
	}
	if total == 0 {
		return model.CustomerGraph{Nodes: []model.Node{}, Edges: []model.Edge{}}, nil
	}

	movies, method, err := u.watched(ctx, ID, limit)
	if err != nil {
		return model.CustomerGraph{}, fmt.Errorf("%w: %w", ErrFailedToLoadWatched, err)
	}

	cid := model.CustomerNodeID(c.ID)
	g := model.CustomerGraph{
		Nodes:   make([]model.Node, 0, len(movies)+1),
		Edges:   make([]model.Edge, 0, len(movies)),
		Total:   total,
		Showing: len(movies),
		Method:  method,
	}
	g.Nodes = append(g.Nodes, model.Node{ID: cid, Label: c.Name(), Type: model.NodeCustomer})
	for _, m := range movies {
		mid := model.MovieNodeID(m.ID)
		g.Nodes = append(g.Nodes, model.Node{ID: mid, Label: m.Title, Type: model.NodeMovie})
		g.Edges = append(g.Edges, model.Edge{Source: cid, Target: mid, Type: "WATCHED"})
	}
	return g, nil
}

// Network extends the customer graph with up to five similar customers when
// depth is at least 2.
func (u *Usecase) Network(ctx context.Context, ID model.CustomerID, depth, limit int) (model.Network, error) {
	if depth <= 0 {
		depth = DefaultNetworkDepth
	}
	limit = clampLimit(limit, DefaultNetworkLimit)

	c, err := u.lookup(ctx, ID)
	if err != nil {
		return model.Network{}, err
	}

	movies, method, err := u.watched(ctx, ID, limit)
	if err != nil {
		return model.Network{}, fmt.Errorf("%w: %w", ErrFailedToLoadWatched, err)
	}

	cid := model.CustomerNodeID(c.ID)
	n := model.Network{
		Nodes:  []model.Node{{ID: cid, Label: c.Name(), Type: model.NodeCustomer, Group: 1, Size: 12}},
		Links:  make([]model.Edge, 0, len(movies)),
		Method: method,
	}
	for _, m := range movies {
		mid := model.MovieNodeID(m.ID)
		n.Nodes = append(n.Nodes, model.Node{
			ID: mid, Label: m.Title, Type: model.NodeMovie, Group: 2, Size: 8,
			Genres: m.Genres.Keys(2),
		})
		n.Links = append(n.Links, model.Edge{Source: cid, Target: mid, Type: "WATCHED", Value: 1})
	}

	peers := 0
	if depth >= 2 && len(movies) > 0 {
		similar, simMethod, err := u.similar(ctx, ID, similarCustomers)
		if err != nil {
			return model.Network{}, fmt.Errorf("%w: %w", ErrFailedToLoadNeighbors, err)
		}
		if simMethod == model.MethodSQLFallback {
			n.Method = simMethod
		}
		for _, s := range similar {
			sid := model.CustomerNodeID(s.ID)
			n.Nodes = append(n.Nodes, model.Node{
				ID: sid, Label: s.Name, Type: model.NodeCustomer, Group: 3, Size: 10,
				CommonMovies: s.CommonMovies,
			})
			n.Links = append(n.Links, model.Edge{Source: cid, Target: sid, Type: "SIMILAR", Value: 2})
		}
		peers = len(similar)
	}

	n.Stats = model.NetworkStats{
		TotalNodes: len(n.Nodes),
		TotalLinks: len(n.Links),
		Customers:  1 + peers,
		Movies:     len(movies),
	}
	return n, nil
}

// Compare computes shared and exclusive movies of two customers and their
// Jaccard similarity as an integer percentage.
func (u *Usecase) Compare(ctx context.Context, ID1, ID2 model.CustomerID) (model.Comparison, error) {
	c1, err := u.lookup(ctx, ID1)
	if err != nil {
		return model.Comparison{}, err
	}
	c2, err := u.lookup(ctx, ID2)
	if err != nil {
		return model.Comparison{}, err
	}

	m1, err := u.customers.WatchedMovies(ctx, ID1)
	if err != nil {
		return model.Comparison{}, fmt.Errorf("%w: %w", ErrFailedToLoadWatched, err)
	}
	m2, err := u.customers.WatchedMovies(ctx, ID2)
	if err != nil {
		return model.Comparison{}, fmt.Errorf("%w: %w", ErrFailedToLoadWatched, err)
	}

	in1 := make(map[model.MovieID]struct{}, len(m1))
	for _, m := range m1 {
		in1[m.ID] = struct{}{}
	}
	in2 := make(map[model.MovieID]struct{}, len(m2))
	for _, m := range m2 {
		in2[m.ID] = struct{}{}
	}

	var common, only1, only2 []model.MovieRef
	for _, m := range m1 {
		if _, ok := in2[m.ID]; ok {
			common = append(common, m)
		} else {
			only1 = append(only1, m)
		}
	}
	for _, m := range m2 {
		if _, ok := in1[m.ID]; !ok {
			only2 = append(only2, m)
		}
	}

	union := len(common) + len(only1) + len(only2)

	return model.Comparison{
		Customer1: model.CustomerSide{
			ID: c1.ID, Name: c1.Name(), TotalMovies: len(m1),
			UniqueMovies: head(only1, compareSample), UniqueCount: len(only1),
		},
		Customer2: model.CustomerSide{
			ID: c2.ID, Name: c2.Name(), TotalMovies: len(m2),
			UniqueMovies: head(only2, compareSample), UniqueCount: len(only2),
		},
		Common:          head(common, compareSample),
		CommonCount:     len(common),
		SimilarityScore: Jaccard(len(common), union),
	}, nil
}

// Jaccard returns round(intersection/union*100), or 0 for an empty union.
func Jaccard(intersection, union int) int {
	if union == 0 {
		return 0
	}
	return int(math.Round(float64(intersection) / float64(union) * 100))
}

func head(movies []model.MovieRef, n int) []model.MovieRef {
	if len(movies) > n {
		return movies[:n]
	}
	if movies == nil {
		return []model.MovieRef{}
	}
	return movies
}
