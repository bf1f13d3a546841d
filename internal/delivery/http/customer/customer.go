package http_customer

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/cinegraph/internal/delivery/http/common"
	"github.com/humanbelnik/cinegraph/internal/model"
	usecase_customer "github.com/humanbelnik/cinegraph/internal/usecase/customer"
)

type CustomerDTO struct {
	ID          int64  `json:"id" example:"101"`
	FirstName   string `json:"firstname" example:"Ana"`
	LastName    string `json:"lastname" example:"Silva"`
	Email       string `json:"email" example:"ana@example.com"`
	MoviesCount int    `json:"movies_count" example:"4"`
}

type CustomersResponseDTO struct {
	Success bool          `json:"success" example:"true"`
	Data    []CustomerDTO `json:"data"`
}

type CreateCustomerRequestDTO struct {
	FirstName string `json:"firstname" example:"Ana"`
	LastName  string `json:"lastname" example:"Silva"`
	Email     string `json:"email" example:"ana@example.com"`
}

type CreateCustomerResponseDTO struct {
	Success  bool        `json:"success" example:"true"`
	Customer CustomerDTO `json:"customer"`
}

type WatchRequestDTO struct {
	MovieID int64    `json:"movie_id" example:"42"`
	Rating  *float64 `json:"rating,omitempty" example:"4.5"`
}

type WatchResponseDTO struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Marked as watched"`
}

func (r *CreateCustomerRequestDTO) ConvertToCustomer() model.Customer {
	return model.Customer{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}

func ConvertFromCustomer(c model.Customer) CustomerDTO {
	return CustomerDTO{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		MoviesCount: c.MoviesCount,
	}
}

type Controller struct {
	uc     *usecase_customer.Usecase
	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_customer.Usecase, opts ...ControllerOption) *Controller {
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
	customers := router.Group("/customers")
	{
		customers.GET("", c.list)
		customers.POST("", c.create)
		customers.POST("/:id/watch", c.watch)
	}
}

// @Summary Customer directory
// @Tags Customers
// @Produce json
// @Success 200 {object} CustomersResponseDTO
// @Failure 500 {object} http_common.ErrorResponse
// @Router /customers [get]
func (c *Controller) list(ctx *gin.Context) {
	customers, err := c.uc.List(ctx.Request.Context())
	if err != nil {
		c.logger.Error("failed to list customers", slog.String("error", err.Error()))
		http_common.Fail(ctx, http.StatusInternalServerError, "failed to list customers")
		return
	}

	data := make([]CustomerDTO, len(customers))
	for i, cu := range customers {
		data[i] = ConvertFromCustomer(cu)
	}
	ctx.JSON(http.StatusOK, CustomersResponseDTO{Success: true, Data: data})
}

// @Summary Enroll a customer
// @Description Allocates the next customer id. All fields are required after trimming.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body CreateCustomerRequestDTO true "Customer"
// @Success 201 {object} CreateCustomerResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /customers [post]
func (c *Controller) create(ctx *gin.Context) {
	var req CreateCustomerRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		http_common.Fail(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := c.uc.Create(ctx.Request.Context(), req.ConvertToCustomer())
	if err != nil {
		if errors.Is(err, usecase_customer.ErrInvalidInput) {
			c.logger.Warn("rejected customer", slog.String("error", err.Error()))
			http_common.Fail(ctx, http.StatusBadRequest, "firstname, lastname and email are required")
			return
		}
		c.logger.Error("failed to create customer", slog.String("error", err.Error()))
		http_common.Fail(ctx, http.StatusInternalServerError, "failed to create customer")
		return
	}

	ctx.JSON(http.StatusCreated, CreateCustomerResponseDTO{Success: true, Customer: ConvertFromCustomer(created)})
}

// @Summary Mark a movie as watched
// @Description Records a watch. Re-sending an already watched movie with a rating updates the rating; without a rating it is rejected.
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path int true "Customer id"
// @Param request body WatchRequestDTO true "Movie and optional rating"
// @Success 200 {object} WatchResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse "Unknown customer or movie"
// @Failure 500 {object} http_common.ErrorResponse
// @Router /customers/{id}/watch [post]
func (c *Controller) watch(ctx *gin.Context) {
	customerID, err := http_common.ParamID(ctx, "id")
	if err != nil {
		c.logger.Warn("invalid customer id", slog.String("id", ctx.Param("id")))
		http_common.Fail(ctx, http.StatusBadRequest, "invalid customer id")
		return
	}

	var req WatchRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid request body", slog.String("error", err.Error()))
		http_common.Fail(ctx, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := c.uc.MarkWatched(ctx.Request.Context(), model.WatchInput{
		CustomerID: customerID,
		MovieID:    req.MovieID,
		Rating:     req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase_customer.ErrInvalidInput):
			c.logger.Warn("rejected watch", slog.String("error", err.Error()))
			http_common.Fail(ctx, http.StatusBadRequest, "movie_id is required")
		case errors.Is(err, usecase_customer.ErrAlreadyWatched):
			c.logger.Warn("rejected watch", slog.Int64("customer_id", customerID), slog.Int64("movie_id", req.MovieID))
			http_common.Fail(ctx, http.StatusBadRequest, "movie already watched")
		case errors.Is(err, model.ErrNotFound):
			c.logger.Warn("watch for unknown customer or movie", slog.String("error", err.Error()))
			http_common.Fail(ctx, http.StatusNotFound, "customer or movie not found")
		default:
			c.logger.Error("failed to mark watch", slog.String("error", err.Error()))
			http_common.Fail(ctx, http.StatusInternalServerError, "failed to mark movie as watched")
		}
		return
	}

	message := "Marked as watched"
	if outcome == model.WatchRatingUpdated {
		message = "Rating updated"
	}
	ctx.JSON(http.StatusOK, WatchResponseDTO{Success: true, Message: message})
}
