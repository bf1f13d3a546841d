package infra_qdrant

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/humanbelnik/cinegraph/internal/config"
	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
)

const maxMessageSize = 16 << 20

// MovieLoader fills in movie rows for ids returned by the index.
type MovieLoader interface {
	LoadByIDs(ctx context.Context, IDs []model.MovieID) ([]model.ScoredMovie, error)
}

// Searcher is the part of the Qdrant client the index needs.
type Searcher interface {
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
}

// Index answers nearest-neighbour queries from a Qdrant collection whose
// point ids are movie ids.
type Index struct {
	client     Searcher
	collection string
	movies     MovieLoader
}

func MustEstablishConn(cfg config.Qdrant) *qdrant.Client {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
		GrpcOptions: []grpc.DialOption{
			grpc.WithDefaultCallOptions(grpc.MaxCallRecvMsgSize(maxMessageSize)),
		},
	})
	if err != nil {
		log.Fatalf("failed to connect to qdrant: %v", err)
	}
	return client
}

func New(client Searcher, collection string, movies MovieLoader) *Index {
	return &Index{client: client, collection: collection, movies: movies}
}

func (i *Index) Nearest(ctx context.Context, e model.Embedding, k int) ([]model.ScoredMovie, error) {
	points, err := i.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: i.collection,
		Query:          qdrant.NewQuery(e...),
		Limit:          qdrant.PtrOf(uint64(k)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query qdrant: %w", err)
	}

	scores := make(map[model.MovieID]float64, len(points))
	ids := make([]model.MovieID, 0, len(points))
	for _, p := range points {
		id := model.MovieID(p.GetId().GetNum())
		scores[id] = min(max(float64(p.GetScore()), 0), 1)
		ids = append(ids, id)
	}

	movies, err := i.movies.LoadByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for j := range movies {
		movies[j].Score = scores[movies[j].ID]
	}
	sort.SliceStable(movies, func(a, b int) bool {
		return movies[a].Score > movies[b].Score
	})
	return movies, nil
}
