package http_search

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/cinegraph/internal/delivery/http/common"
	"github.com/humanbelnik/cinegraph/internal/model"
	usecase_catalog "github.com/humanbelnik/cinegraph/internal/usecase/catalog"
)

type VectorSearchRequestDTO struct {
	Query string `json:"query" example:"space horror with a lone survivor"`
	TopK  int    `json:"top_k" example:"5"`
}

type SearchHitDTO struct {
	ID        int64          `json:"id" example:"42"`
	Title     string         `json:"title" example:"Alien"`
	Snippet   string         `json:"snippet"`
	Genres    map[string]any `json:"genres"`
	Rating    float64        `json:"rating" example:"8.5"`
	Score     float64        `json:"score" example:"0.83"`
	PosterURL *string        `json:"poster_url"`
}

type VectorSearchResponseDTO struct {
	Success bool           `json:"success" example:"true"`
	Query   string         `json:"query"`
	Method  string         `json:"method" example:"vector"`
	Results []SearchHitDTO `json:"results"`
}

func ConvertFromResult(r model.SearchResult) VectorSearchResponseDTO {
	hits := make([]SearchHitDTO, len(r.Hits))
	for i, h := range r.Hits {
		hits[i] = SearchHitDTO{
			ID:        h.ID,
			Title:     h.Title,
			Snippet:   h.Snippet,
			Genres:    h.Genres,
			Rating:    h.Rating,
			Score:     h.Score,
			PosterURL: h.PosterURL,
		}
	}
	return VectorSearchResponseDTO{
		Success: true,
		Query:   r.Query,
		Method:  string(r.Method),
		Results: hits,
	}
}

type Controller struct {
	uc     *usecase_catalog.Usecase
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_catalog.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/search/vector", c.vectorSearch)
}

// @Summary Semantic movie search
// @Description Embeds the query and ranks movies by cosine similarity. Falls back to substring matching (score 0.5) when the vector index is unavailable.
// @Tags Search
// @Accept json
// @Produce json
// @Param request body VectorSearchRequestDTO true "Query text and result count"
// @Success 200 {object} VectorSearchResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Empty query"
// @Failure 500 {object} http_common.ErrorResponse
// @Router /search/vector [post]
func (c *Controller) vectorSearch(ctx *gin.Context) {
	var req VectorSearchRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		http_common.Fail(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := c.uc.VectorSearch(ctx.Request.Context(), req.Query, req.TopK)
	if err != nil {
		if errors.Is(err, usecase_catalog.ErrInvalidInput) {
			c.logger.Warn("rejected vector search", slog.String("error", err.Error()))
			http_common.Fail(ctx, http.StatusBadRequest, "query is required")
			return
		}
		c.logger.Error("vector search failed", slog.String("error", err.Error()))
		http_common.Fail(ctx, http.StatusInternalServerError, "search failed")
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromResult(result))
}
