package main

import (
	"github.com/humanbelnik/cinegraph/internal/app"
	"github.com/humanbelnik/cinegraph/internal/config"
)

// @title Cinegraph API
// @version 1.0
// @description Movie catalog, vector search and graph recommendations over Postgres.
// @BasePath /api
func main() {
	app.Go(config.Load())
}
