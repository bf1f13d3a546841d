package http_chat

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/cinegraph/internal/delivery/http/common"
	http_graph "github.com/humanbelnik/cinegraph/internal/delivery/http/graph"
	"github.com/humanbelnik/cinegraph/internal/model"
	usecase_chat "github.com/humanbelnik/cinegraph/internal/usecase/chat"
)

type ChatRequestDTO struct {
	Message    string `json:"message" example:"What should I watch tonight?"`
	CustomerID *int64 `json:"customer_id,omitempty" example:"101"`
}

type ChatResponseDTO struct {
	Success    bool                           `json:"success" example:"true"`
	Message    string                         `json:"message"`
	Response   string                         `json:"response"`
	MovieCards []http_graph.RecommendationDTO `json:"movie_cards"`
	GraphUsed  bool                           `json:"graph_used"`
	Method     string                         `json:"method" example:"property_graph_pgql"`
}

type SmartChatResponseDTO struct {
	Success       bool     `json:"success" example:"true"`
	Message       string   `json:"message"`
	Response      string   `json:"response"`
	GraphInsights []string `json:"graph_insights"`
	ContextUsed   bool     `json:"context_used"`
}

func (r *ChatRequestDTO) ConvertToChatRequest() model.ChatRequest {
	return model.ChatRequest{Message: r.Message, CustomerID: r.CustomerID}
}

func ConvertFromAnswer(a model.ChatAnswer) ChatResponseDTO {
	cards := make([]http_graph.RecommendationDTO, len(a.MovieCards))
	for i, r := range a.MovieCards {
		cards[i] = http_graph.ConvertFromRecommendation(r, a.Method)
	}
	return ChatResponseDTO{
		Success:    true,
		Message:    a.Message,
		Response:   a.Response,
		MovieCards: cards,
		GraphUsed:  a.GraphUsed,
		Method:     string(a.Method),
	}
}

func ConvertFromSmartAnswer(a model.SmartAnswer) SmartChatResponseDTO {
	insights := a.GraphInsights
	if insights == nil {
		insights = []string{}
	}
	return SmartChatResponseDTO{
		Success:       true,
		Message:       a.Message,
		Response:      a.Response,
		GraphInsights: insights,
		ContextUsed:   a.ContextUsed,
	}
}

type Controller struct {
	uc     *usecase_chat.Usecase
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_chat.Usecase, opts ...ControllerOption) *Controller {
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
	chat := router.Group("/chat")
	{
		chat.POST("", c.chat)
		chat.POST("/smart", c.smart)
	}
}

func (c *Controller) bind(ctx *gin.Context) (model.ChatRequest, bool) {
	var req ChatRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		http_common.Fail(ctx, http.StatusBadRequest, "invalid request body")
		return model.ChatRequest{}, false
	}
	return req.ConvertToChatRequest(), true
}

func (c *Controller) fail(ctx *gin.Context, err error) {
	if errors.Is(err, usecase_chat.ErrInvalidInput) {
		c.logger.Warn("rejected chat message", slog.String("error", err.Error()))
		http_common.Fail(ctx, http.StatusBadRequest, "message required")
		return
	}
	c.logger.Error("chat failed", slog.String("error", err.Error()))
	http_common.Fail(ctx, http.StatusInternalServerError, "failed to generate response")
}

// @Summary Graph-aware assistant
// @Description Answers with the customer's watched titles and top graph recommendations as context. Recommendations are returned as movie cards.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body ChatRequestDTO true "Message and optional customer"
// @Success 200 {object} ChatResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /chat [post]
func (c *Controller) chat(ctx *gin.Context) {
	req, ok := c.bind(ctx)
	if !ok {
		return
	}

	answer, err := c.uc.Chat(ctx.Request.Context(), req)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromAnswer(answer))
}

// @Summary History-aware assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body ChatRequestDTO true "Message and optional customer"
// @Success 200 {object} SmartChatResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /chat/smart [post]
func (c *Controller) smart(ctx *gin.Context) {
	req, ok := c.bind(ctx)
	if !ok {
		return
	}

	answer, err := c.uc.Smart(ctx.Request.Context(), req)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ConvertFromSmartAnswer(answer))
}
