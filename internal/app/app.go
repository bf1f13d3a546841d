package app

import (
	"log/slog"
	"os"

	"github.com/humanbelnik/cinegraph/internal/config"
	http_chat "github.com/humanbelnik/cinegraph/internal/delivery/http/chat"
	http_customer "github.com/humanbelnik/cinegraph/internal/delivery/http/customer"
	http_graph "github.com/humanbelnik/cinegraph/internal/delivery/http/graph"
	http_health "github.com/humanbelnik/cinegraph/internal/delivery/http/health"
	http_init "github.com/humanbelnik/cinegraph/internal/delivery/http/init"
	http_movie "github.com/humanbelnik/cinegraph/internal/delivery/http/movie"
	http_search "github.com/humanbelnik/cinegraph/internal/delivery/http/search"
	http_swagger "github.com/humanbelnik/cinegraph/internal/delivery/http/swagger"
	infra_genai "github.com/humanbelnik/cinegraph/internal/infra/genai"
	infra_postgres_customer "github.com/humanbelnik/cinegraph/internal/infra/postgres/customer"
	infra_postgres_embedding "github.com/humanbelnik/cinegraph/internal/infra/postgres/embedding"
	infra_postgres_graph "github.com/humanbelnik/cinegraph/internal/infra/postgres/graph"
	infra_postgres_health "github.com/humanbelnik/cinegraph/internal/infra/postgres/health"
	infra_pg_init "github.com/humanbelnik/cinegraph/internal/infra/postgres/init"
	infra_postgres_movie "github.com/humanbelnik/cinegraph/internal/infra/postgres/movie"
	infra_qdrant "github.com/humanbelnik/cinegraph/internal/infra/qdrant"
	infra_s3 "github.com/humanbelnik/cinegraph/internal/infra/s3"
	usecase_catalog "github.com/humanbelnik/cinegraph/internal/usecase/catalog"
	usecase_chat "github.com/humanbelnik/cinegraph/internal/usecase/chat"
	usecase_customer "github.com/humanbelnik/cinegraph/internal/usecase/customer"
	usecase_graph "github.com/humanbelnik/cinegraph/internal/usecase/graph"
)

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func Go(cfg *config.Config) {
	logger := newLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	schema := cfg.Postgres.Schema

	movieRepository := infra_postgres_movie.New(pgConn, schema)
	customerRepository := infra_postgres_customer.New(pgConn, schema)
	propertyGraph := infra_postgres_graph.NewPropertyGraph(pgConn, schema, cfg.Postgres.GraphName)
	joinGraph := infra_postgres_graph.NewJoinGraph(pgConn, schema)

	var index usecase_catalog.VectorIndex = infra_postgres_embedding.New(pgConn, schema)
	if cfg.Qdrant.Enabled() {
		index = infra_qdrant.New(infra_qdrant.MustEstablishConn(cfg.Qdrant), cfg.Qdrant.Collection, movieRepository)
		logger.Info("vector search backed by qdrant", slog.String("collection", cfg.Qdrant.Collection))
	}

	var posters usecase_graph.PosterResolver = infra_s3.Passthrough{}
	if cfg.S3.Enabled() {
		posters = infra_s3.NewPosterResolver(infra_s3.MustEstablishConn(cfg.S3), cfg.S3.PresignTTL,
			infra_s3.WithLogger(logger))
	}

	genai := infra_genai.New(cfg.GenAI, infra_genai.WithLogger(logger))

	catalogOpts := []usecase_catalog.Option{
		usecase_catalog.WithLogger(logger),
		usecase_catalog.WithPosterResolver(posters),
	}
	if cfg.GenAI.RandomFallback {
		catalogOpts = append(catalogOpts, usecase_catalog.WithRandomFallback(cfg.GenAI.Dimension))
	}
	catalogUC := usecase_catalog.New(movieRepository, index, genai, catalogOpts...)

	graphUC := usecase_graph.New(propertyGraph, joinGraph, customerRepository, movieRepository,
		usecase_graph.WithLogger(logger),
		usecase_graph.WithPosterResolver(posters),
	)
	customerUC := usecase_customer.New(customerRepository, usecase_customer.WithLogger(logger))
	chatUC := usecase_chat.New(graphUC, customerRepository, genai, usecase_chat.WithLogger(logger))

	controllerPool := http_init.NewControllerPool(
		http_init.WithLogger(logger),
		http_init.WithCORSOrigins(cfg.HTTP.CORSOrigins),
	)
	controllerPool.Add(http_swagger.New(""))
	controllerPool.Add(http_health.New(infra_postgres_health.New(pgConn)))
	controllerPool.Add(http_movie.New(catalogUC, http_movie.WithLogger(logger)))
	controllerPool.Add(http_search.New(catalogUC, http_search.WithLogger(logger)))
	controllerPool.Add(http_customer.New(customerUC, http_customer.WithLogger(logger)))
	controllerPool.Add(http_graph.New(graphUC, http_graph.WithLogger(logger)))
	controllerPool.Add(http_chat.New(chatUC, http_chat.WithLogger(logger)))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Host, cfg.HTTP.Port)
}
