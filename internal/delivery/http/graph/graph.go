package http_graph

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/cinegraph/internal/delivery/http/common"
	"github.com/humanbelnik/cinegraph/internal/model"
	usecase_graph "github.com/humanbelnik/cinegraph/internal/usecase/graph"
)

const emptyHistoryMessage = "Customer has not watched any movies yet"

type RecommendationDTO struct {
	ID                 int64          `json:"id" example:"14"`
	Title              string         `json:"title" example:"Heat"`
	Summary            string         `json:"summary"`
	Rating             float64        `json:"rating" example:"8.3"`
	Genres             map[string]any `json:"genres"`
	PosterURL          *string        `json:"poster_url"`
	SimilarUsers       int            `json:"similar_users" example:"3"`
	GraphReason        string         `json:"graph_reason" example:"3 users with similar taste watched this"`
	RecommendationType string         `json:"recommendation_type" example:"property_graph_pgql"`
}

type RecommendationsResponseDTO struct {
	Success         bool                `json:"success" example:"true"`
	CustomerID      int64               `json:"customer_id" example:"101"`
	Method          string              `json:"method" example:"property_graph_pgql"`
	Recommendations []RecommendationDTO `json:"recommendations"`
}

type NodeDTO struct {
	ID           string   `json:"id" example:"c101"`
	Label        string   `json:"label" example:"Ana Silva"`
	Type         string   `json:"type" example:"customer"`
	Group        int      `json:"group,omitempty" example:"1"`
	Size         int      `json:"size,omitempty" example:"12"`
	Genres       []string `json:"genres,omitempty"`
	CommonMovies int      `json:"common_movies,omitempty"`
}

type EdgeDTO struct {
	Source string `json:"source" example:"c101"`
	Target string `json:"target" example:"m42"`
	Type   string `json:"type" example:"WATCHED"`
	Value  int    `json:"value,omitempty" example:"1"`
}

type CustomerGraphResponseDTO struct {
	Success bool      `json:"success" example:"true"`
	Nodes   []NodeDTO `json:"nodes"`
	Edges   []EdgeDTO `json:"edges"`
	Total   int       `json:"total" example:"12"`
	Showing int       `json:"showing" example:"12"`
	Method  string    `json:"method,omitempty" example:"property_graph_pgql"`
	Message string    `json:"message,omitempty"`
}

type NetworkStatsDTO struct {
	TotalNodes int `json:"total_nodes"`
	TotalLinks int `json:"total_links"`
	Customers  int `json:"customers"`
	Movies     int `json:"movies"`
}

type NetworkResponseDTO struct {
	Success bool            `json:"success" example:"true"`
	Nodes   []NodeDTO       `json:"nodes"`
	Links   []EdgeDTO       `json:"links"`
	Stats   NetworkStatsDTO `json:"stats"`
	Method  string          `json:"method" example:"property_graph_pgql"`
}

type MovieRefDTO struct {
	ID     int64          `json:"id" example:"42"`
	Title  string         `json:"title" example:"Alien"`
	Genres map[string]any `json:"genres"`
}

type CustomerSideDTO struct {
	ID           int64         `json:"id" example:"101"`
	Name         string        `json:"name" example:"Ana Silva"`
	TotalMovies  int           `json:"total_movies" example:"7"`
	UniqueMovies []MovieRefDTO `json:"unique_movies"`
}

type CommonDTO struct {
	Count  int           `json:"count" example:"2"`
	Movies []MovieRefDTO `json:"movies"`
}

type CompareResponseDTO struct {
	Success           bool            `json:"success" example:"true"`
	Customer1         CustomerSideDTO `json:"customer1"`
	Customer2         CustomerSideDTO `json:"customer2"`
	Common            CommonDTO       `json:"common"`
	SimilarityScore   int             `json:"similarity_score" example:"33"`
	UniqueToCustomer1 int             `json:"unique_to_customer1" example:"5"`
	UniqueToCustomer2 int             `json:"unique_to_customer2" example:"1"`
}

func ConvertFromRecommendation(r model.Recommendation, method model.Method) RecommendationDTO {
	return RecommendationDTO{
		ID:                 r.ID,
		Title:              r.Title,
		Summary:            r.Summary,
		Rating:             r.Rating,
		Genres:             r.Genres,
		PosterURL:          r.PosterURL,
		SimilarUsers:       r.SimilarUsers,
		GraphReason:        r.Reason(),
		RecommendationType: string(method),
	}
}

func ConvertFromRecommendations(recs model.Recommendations) RecommendationsResponseDTO {
	items := make([]RecommendationDTO, len(recs.Items))
	for i, r := range recs.Items {
		items[i] = ConvertFromRecommendation(r, recs.Method)
	}
	return RecommendationsResponseDTO{
		Success:         true,
		CustomerID:      recs.CustomerID,
		Method:          string(recs.Method),
		Recommendations: items,
	}
}

func convertNodes(nodes []model.Node) []NodeDTO {
	out := make([]NodeDTO, len(nodes))
	for i, n := range nodes {
		out[i] = NodeDTO{
			ID:           n.ID,
			Label:        n.Label,
			Type:         string(n.Type),
			Group:        n.Group,
			Size:         n.Size,
			Genres:       n.Genres,
			CommonMovies: n.CommonMovies,
		}
	}
	return out
}

func convertEdges(edges []model.Edge) []EdgeDTO {
	out := make([]EdgeDTO, len(edges))
	for i, e := range edges {
		out[i] = EdgeDTO{Source: e.Source, Target: e.Target, Type: e.Type, Value: e.Value}
	}
	return out
}

func convertRefs(refs []model.MovieRef) []MovieRefDTO {
	out := make([]MovieRefDTO, len(refs))
	for i, m := range refs {
		out[i] = MovieRefDTO{ID: m.ID, Title: m.Title, Genres: m.Genres}
	}
	return out
}

func ConvertFromCustomerGraph(g model.CustomerGraph) CustomerGraphResponseDTO {
	resp := CustomerGraphResponseDTO{
		Success: true,
		Nodes:   convertNodes(g.Nodes),
		Edges:   convertEdges(g.Edges),
		Total:   g.Total,
		Showing: g.Showing,
		Method:  string(g.Method),
	}
	if g.Total == 0 {
		resp.Message = emptyHistoryMessage
	}
	return resp
}

func ConvertFromNetwork(n model.Network) NetworkResponseDTO {
	return NetworkResponseDTO{
		Success: true,
		Nodes:   convertNodes(n.Nodes),
		Links:   convertEdges(n.Links),
		Stats: NetworkStatsDTO{
			TotalNodes: n.Stats.TotalNodes,
			TotalLinks: n.Stats.TotalLinks,
			Customers:  n.Stats.Customers,
			Movies:     n.Stats.Movies,
		},
		Method: string(n.Method),
	}
}

func convertSide(s model.CustomerSide) CustomerSideDTO {
	return CustomerSideDTO{
		ID:           s.ID,
		Name:         s.Name,
		TotalMovies:  s.TotalMovies,
		UniqueMovies: convertRefs(s.UniqueMovies),
	}
}

func ConvertFromComparison(c model.Comparison) CompareResponseDTO {
	return CompareResponseDTO{
		Success:   true,
		Customer1: convertSide(c.Customer1),
		Customer2: convertSide(c.Customer2),
		Common: CommonDTO{
			Count:  c.CommonCount,
			Movies: convertRefs(c.Common),
		},
		SimilarityScore:   c.SimilarityScore,
		UniqueToCustomer1: c.Customer1.UniqueCount,
		UniqueToCustomer2: c.Customer2.UniqueCount,
	}
}

type Controller struct {
	uc     *usecase_graph.Usecase
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_graph.Usecase, opts ...ControllerOption) *Controller {
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
	graph := router.Group("/graph")
	{
		graph.GET("/recommendations/:id", c.recommendations)
		graph.GET("/customer/:id", c.customerGraph)
		graph.GET("/network/:id", c.network)
		graph.GET("/compare/:id1/:id2", c.compare)
	}
}

func (c *Controller) pathID(ctx *gin.Context, key string) (int64, bool) {
	id, err := http_common.ParamID(ctx, key)
	if err != nil {
		c.logger.Warn("invalid customer id", slog.String(key, ctx.Param(key)))
		http_common.Fail(ctx, http.StatusBadRequest, "invalid customer id")
		return 0, false
	}
	return id, true
}

func (c *Controller) queryInt(ctx *gin.Context, key string, def int) (int, bool) {
	v, err := http_common.QueryInt(ctx, key, def)
	if err != nil {
		c.logger.Warn("invalid query parameter", slog.String(key, ctx.Query(key)))
		http_common.Fail(ctx, http.StatusBadRequest, key+" must be an integer")
		return 0, false
	}
	return v, true
}

func (c *Controller) fail(ctx *gin.Context, op string, err error) {
	if errors.Is(err, model.ErrNotFound) {
		c.logger.Warn(op, slog.String("error", err.Error()))
		http_common.Fail(ctx, http.StatusNotFound, err.Error())
		return
	}
	c.logger.Error(op, slog.String("error", err.Error()))
	http_common.Fail(ctx, http.StatusInternalServerError, op)
}

// @Summary Collaborative recommendations
// @Description Movies watched by customers who share at least one movie with the given customer, ranked by how many of them watched it. Already watched movies are excluded.
// @Tags Graph
// @Produce json
// @Param id path int true "Customer id"
// @Success 200 {object} RecommendationsResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /graph/recommendations/{id} [get]
func (c *Controller) recommendations(ctx *gin.Context) {
	id, ok := c.pathID(ctx, "id")
	if !ok {
		return
	}

	recs, err := c.uc.Recommend(ctx.Request.Context(), id, usecase_graph.DefaultRecommendations)
	if err != nil {
		c.fail(ctx, "failed to build recommendations", err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromRecommendations(recs))
}

// @Summary Customer ego graph
// @Tags Graph
// @Produce json
// @Param id path int true "Customer id"
// @Param limit query int false "Movie nodes to return" default(20)
// @Success 200 {object} CustomerGraphResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /graph/customer/{id} [get]
func (c *Controller) customerGraph(ctx *gin.Context) {
	id, ok := c.pathID(ctx, "id")
	if !ok {
		return
	}
	limit, ok := c.queryInt(ctx, "limit", usecase_graph.DefaultGraphLimit)
	if !ok {
		return
	}

	g, err := c.uc.CustomerGraph(ctx.Request.Context(), id, limit)
	if err != nil {
		c.fail(ctx, "failed to load customer graph", err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromCustomerGraph(g))
}

// @Summary Customer network
// @Description The customer, their movies and, for depth 2 and above, the five customers sharing the most movies with them.
// @Tags Graph
// @Produce json
// @Param id path int true "Customer id"
// @Param depth query int false "1 for movies only, 2 to add similar customers" default(2)
// @Param limit query int false "Movie nodes to return" default(50)
// @Success 200 {object} NetworkResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /graph/network/{id} [get]
func (c *Controller) network(ctx *gin.Context) {
	id, ok := c.pathID(ctx, "id")
	if !ok {
		return
	}
	depth, ok := c.queryInt(ctx, "depth", usecase_graph.DefaultNetworkDepth)
	if !ok {
		return
	}
	limit, ok := c.queryInt(ctx, "limit", usecase_graph.DefaultNetworkLimit)
	if !ok {
		return
	}

	n, err := c.uc.Network(ctx.Request.Context(), id, depth, limit)
	if err != nil {
		c.fail(ctx, "failed to load network", err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromNetwork(n))
}

// @Summary Compare two customers
// @Description Shared and exclusive movies plus Jaccard similarity as an integer percentage.
// @Tags Graph
// @Produce json
// @Param id1 path int true "First customer id"
// @Param id2 path int true "Second customer id"
// @Success 200 {object} CompareResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /graph/compare/{id1}/{id2} [get]
func (c *Controller) compare(ctx *gin.Context) {
	id1, ok := c.pathID(ctx, "id1")
	if !ok {
		return
	}
	id2, ok := c.pathID(ctx, "id2")
	if !ok {
		return
	}

	cmp, err := c.uc.Compare(ctx.Request.Context(), id1, id2)
	if err != nil {
		c.fail(ctx, "failed to compare customers", err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromComparison(cmp))
}
