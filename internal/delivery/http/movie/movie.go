package http_movie

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/cinegraph/internal/delivery/http/common"
	"github.com/humanbelnik/cinegraph/internal/model"
	usecase_catalog "github.com/humanbelnik/cinegraph/internal/usecase/catalog"
)

// MovieDTO is a catalog entry. Media fields are added by MovieWithMediaDTO.
type MovieDTO struct {
	ID         int64          `json:"id" example:"42"`
	Title      string         `json:"title" example:"Alien"`
	Genres     map[string]any `json:"genres"`
	Summary    string         `json:"summary" example:"In space no one can hear you scream."`
	Rating     float64        `json:"rating" example:"8.5"`
	Year       int            `json:"year" example:"1979"`
	WatchCount int            `json:"watchCount" example:"3"`
}

type MovieWithMediaDTO struct {
	MovieDTO
	PosterURL  *string `json:"poster_url" example:"https://cdn.example.com/posters/42.jpg"`
	TrailerURL *string `json:"trailer_url"`
}

type MoviesPageResponseDTO struct {
	Success     bool    `json:"success" example:"true"`
	Data        any     `json:"data"`
	Count       int     `json:"count" example:"20"`
	Total       int     `json:"total" example:"1200"`
	SearchQuery *string `json:"search_query"`
}

func ConvertFromMovie(m model.Movie) MovieDTO {
	return MovieDTO{
		ID:         m.ID,
		Title:      m.Title,
		Genres:     m.Genres,
		Summary:    m.Summary,
		Rating:     m.Rating,
		Year:       m.Year,
		WatchCount: m.WatchCount,
	}
}

func ConvertFromPage(p model.Page, search string) MoviesPageResponseDTO {
	resp := MoviesPageResponseDTO{
		Success: true,
		Count:   len(p.Movies),
		Total:   p.Total,
	}
	if search != "" {
		resp.SearchQuery = &search
	}

	if p.WithMedia {
		data := make([]MovieWithMediaDTO, len(p.Movies))
		for i, m := range p.Movies {
			data[i] = MovieWithMediaDTO{MovieDTO: ConvertFromMovie(m), PosterURL: m.PosterURL, TrailerURL: m.TrailerURL}
		}
		resp.Data = data
		return resp
	}

	data := make([]MovieDTO, len(p.Movies))
	for i, m := range p.Movies {
		data[i] = ConvertFromMovie(m)
	}
	resp.Data = data
	return resp
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
	router.GET("/movies", c.getMovies)
}

// @Summary Movie catalog
// @Description Paginated catalog with optional substring search over title and summary. Poster and trailer fields are present only when media assets could be joined.
// @Tags Movies
// @Produce json
// @Param limit query int false "Page size, 1..100" default(20)
// @Param offset query int false "Rows to skip" default(0)
// @Param search query string false "Case-insensitive substring"
// @Success 200 {object} MoviesPageResponseDTO
// @Failure 400 {object} http_common.ErrorResponse "Malformed limit or offset"
// @Failure 500 {object} http_common.ErrorResponse
// @Router /movies [get]
func (c *Controller) getMovies(ctx *gin.Context) {
	limit, err := http_common.QueryInt(ctx, "limit", usecase_catalog.DefaultLimit)
	if err != nil {
		c.logger.Warn("invalid limit", slog.String("limit", ctx.Query("limit")))
		http_common.Fail(ctx, http.StatusBadRequest, "limit must be an integer")
		return
	}
	offset, err := http_common.QueryInt(ctx, "offset", 0)
	if err != nil {
		c.logger.Warn("invalid offset", slog.String("offset", ctx.Query("offset")))
		http_common.Fail(ctx, http.StatusBadRequest, "offset must be an integer")
		return
	}

	q := model.PageQuery{Limit: limit, Offset: offset, Search: ctx.Query("search")}
	page, err := c.uc.List(ctx.Request.Context(), q)
	if err != nil {
		c.logger.Error("failed to load movies", slog.String("error", err.Error()))
		msg := "failed to load movies"
		if errors.Is(err, usecase_catalog.ErrFailedToCount) {
			msg = "failed to count movies"
		}
		http_common.Fail(ctx, http.StatusInternalServerError, msg)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromPage(page, strings.TrimSpace(q.Search)))
}
