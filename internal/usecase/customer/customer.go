package usecase_customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/humanbelnik/cinegraph/internal/model"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyWatched    = errors.New("movie already watched")
	ErrFailedToList      = errors.New("failed to list customers")
	ErrFailedToCreate    = errors.New("failed to create customer")
	ErrFailedToMarkWatch = errors.New("failed to mark movie as watched")
)

//go:generate mockery --name=Repository --output=./mocks/customer/repository --filename=repository.go
type Repository interface {
	List(ctx context.Context) ([]model.Customer, error)
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	WatchExists(ctx context.Context, customerID model.CustomerID, movieID model.MovieID) (bool, error)
	InsertWatch(ctx context.Context, in model.WatchInput) error
	UpdateWatchRating(ctx context.Context, customerID model.CustomerID, movieID model.MovieID, rating float64) error
}

type Usecase struct {
	repository Repository
	logger     *slog.Logger
}

type Option func(*Usecase)

func WithLogger(logger *slog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(repository Repository, opts ...Option) *Usecase {
	u := &Usecase{
		repository: repository,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) List(ctx context.Context) ([]model.Customer, error) {
	customers, err := u.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToList, err)
	}
	return customers, nil
}

func (u *Usecase) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)

	if c.FirstName == "" || c.LastName == "" || c.Email == "" {
		return model.Customer{}, fmt.Errorf("%w: firstname, lastname and email are required", ErrInvalidInput)
	}

	created, err := u.repository.Create(ctx, c)
	if err != nil {
		return model.Customer{}, fmt.Errorf("%w: %w", ErrFailedToCreate, err)
	}

	u.logger.Info("customer created", slog.Int64("customer_id", created.ID))
	return created, nil
}

// MarkWatched records a watch. An existing watch is only touched when a new
// rating comes with the request; otherwise it is rejected with
// ErrAlreadyWatched.
func (u *Usecase) MarkWatched(ctx context.Context, in model.WatchInput) (model.WatchOutcome, error) {
	if in.MovieID <= 0 {
		return 0, fmt.Errorf("%w: movie_id is required", ErrInvalidInput)
	}

	exists, err := u.repository.WatchExists(ctx, in.CustomerID, in.MovieID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToMarkWatch, err)
	}

	if exists {
		return u.rewatch(ctx, in)
	}

	err = u.repository.InsertWatch(ctx, in)
	if errors.Is(err, model.ErrAlreadyExists) {
		// a concurrent request inserted the edge after the lookup
		return u.rewatch(ctx, in)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToMarkWatch, err)
	}
	return model.WatchInserted, nil
}

func (u *Usecase) rewatch(ctx context.Context, in model.WatchInput) (model.WatchOutcome, error) {
	if in.Rating == nil {
		return 0, ErrAlreadyWatched
	}
	if err := u.repository.UpdateWatchRating(ctx, in.CustomerID, in.MovieID, *in.Rating); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToMarkWatch, err)
	}
	return model.WatchRatingUpdated, nil
}
