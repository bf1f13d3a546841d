//go:build !integration

package usecase_customer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	repo_mocks "github.com/humanbelnik/cinegraph/internal/usecase/customer/mocks/customer/repository"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type UsecaseCustomerUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase    *Usecase
	repository *repo_mocks.Repository
	ctx        context.Context
}

func initResources(t provider.T) *resources {
	repository := repo_mocks.NewRepository(t)
	return &resources{
		usecase:    New(repository),
		repository: repository,
		ctx:        context.Background(),
	}
}

func rating(v float64) *float64 {
	return &v
}

func (suite *UsecaseCustomerUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		input       model.Customer
		setupMocks  func(r *resources)
		expectError bool
		errorType   error
		expectID    model.CustomerID
	}{
		{
			name:  "Should create customer with trimmed fields",
			input: model.Customer{FirstName: "  Ana ", LastName: "Silva", Email: " ana@example.com"},
			setupMocks: func(r *resources) {
				r.repository.On("Create", r.ctx, model.Customer{FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"}).
					Return(model.Customer{ID: 101, FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"}, nil).Once()
			},
			expectID: 101,
		},
		{
			name:        "Should reject empty lastname without inserting",
			input:       model.Customer{FirstName: "Ana", LastName: "   ", Email: "ana@example.com"},
			setupMocks:  func(r *resources) {},
			expectError: true,
			errorType:   ErrInvalidInput,
		},
		{
			name:        "Should reject missing email without inserting",
			input:       model.Customer{FirstName: "Ana", LastName: "Silva"},
			setupMocks:  func(r *resources) {},
			expectError: true,
			errorType:   ErrInvalidInput,
		},
		{
			name:  "Should wrap repository error",
			input: model.Customer{FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"},
			setupMocks: func(r *resources) {
				r.repository.On("Create", r.ctx, mock.Anything).Return(model.Customer{}, errors.New("insert error")).Once()
			},
			expectError: true,
			errorType:   ErrFailedToCreate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			created, err := r.usecase.Create(r.ctx, tc.input)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.errorType)
				if errors.Is(tc.errorType, ErrInvalidInput) {
					r.repository.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectID, created.ID)
			assert.Equal(t, 0, created.MoviesCount)
		})
	}
}

func (suite *UsecaseCustomerUnitSuite) TestMarkWatched(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		input         model.WatchInput
		setupMocks    func(r *resources, in model.WatchInput)
		expectError   bool
		errorType     error
		expectOutcome model.WatchOutcome
	}{
		{
			name:          "Should insert first watch",
			input:         model.WatchInput{CustomerID: 101, MovieID: 5},
			expectOutcome: model.WatchInserted,
			setupMocks: func(r *resources, in model.WatchInput) {
				r.repository.On("WatchExists", r.ctx, int64(101), int64(5)).Return(false, nil).Once()
				r.repository.On("InsertWatch", r.ctx, in).Return(nil).Once()
			},
		},
		{
			name:          "Should update rating of existing watch",
			input:         model.WatchInput{CustomerID: 101, MovieID: 5, Rating: rating(4)},
			expectOutcome: model.WatchRatingUpdated,
			setupMocks: func(r *resources, in model.WatchInput) {
				r.repository.On("WatchExists", r.ctx, int64(101), int64(5)).Return(true, nil).Once()
				r.repository.On("UpdateWatchRating", r.ctx, int64(101), int64(5), 4.0).Return(nil).Once()
			},
		},
		{
			name:        "Should reject repeated watch without rating",
			input:       model.WatchInput{CustomerID: 101, MovieID: 5},
			expectError: true,
			errorType:   ErrAlreadyWatched,
			setupMocks: func(r *resources, in model.WatchInput) {
				r.repository.On("WatchExists", r.ctx, int64(101), int64(5)).Return(true, nil).Once()
			},
		},
		{
			name:          "Should update rating when a concurrent watch wins the insert",
			input:         model.WatchInput{CustomerID: 101, MovieID: 5, Rating: rating(3)},
			expectOutcome: model.WatchRatingUpdated,
			setupMocks: func(r *resources, in model.WatchInput) {
				r.repository.On("WatchExists", r.ctx, int64(101), int64(5)).Return(false, nil).Once()
				r.repository.On("InsertWatch", r.ctx, in).Return(fmt.Errorf("watch %w", model.ErrAlreadyExists)).Once()
				r.repository.On("UpdateWatchRating", r.ctx, int64(101), int64(5), 3.0).Return(nil).Once()
			},
		},
		{
			name:        "Should reject unrated watch when a concurrent watch wins the insert",
			input:       model.WatchInput{CustomerID: 101, MovieID: 5},
			expectError: true,
			errorType:   ErrAlreadyWatched,
			setupMocks: func(r *resources, in model.WatchInput) {
				r.repository.On("WatchExists", r.ctx, int64(101), int64(5)).Return(false, nil).Once()
				r.repository.On("InsertWatch", r.ctx, in).Return(fmt.Errorf("watch %w", model.ErrAlreadyExists)).Once()
			},
		},
		{
			name:        "Should require movie id",
			input:       model.WatchInput{CustomerID: 101},
			expectError: true,
			errorType:   ErrInvalidInput,
			setupMocks:  func(r *resources, in model.WatchInput) {},
		},
		{
			name:        "Should surface missing customer or movie as not found",
			input:       model.WatchInput{CustomerID: 999, MovieID: 5},
			expectError: true,
			errorType:   model.ErrNotFound,
			setupMocks: func(r *resources, in model.WatchInput) {
				r.repository.On("WatchExists", r.ctx, int64(999), int64(5)).Return(false, nil).Once()
				r.repository.On("InsertWatch", r.ctx, in).Return(model.ErrNotFound).Once()
			},
		},
		{
			name:        "Should wrap lookup failure",
			input:       model.WatchInput{CustomerID: 101, MovieID: 5},
			expectError: true,
			errorType:   ErrFailedToMarkWatch,
			setupMocks: func(r *resources, in model.WatchInput) {
				r.repository.On("WatchExists", r.ctx, int64(101), int64(5)).Return(false, errors.New("conn reset")).Once()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r, tc.input)

			outcome, err := r.usecase.MarkWatched(r.ctx, tc.input)

			if tc.expectError {
				assert.ErrorIs(t, err, tc.errorType)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectOutcome, outcome)
		})
	}
}

func (suite *UsecaseCustomerUnitSuite) TestWatchTwiceWithoutRating(t provider.T) {
	r := initResources(t)
	in := model.WatchInput{CustomerID: 101, MovieID: 9}

	r.repository.On("WatchExists", r.ctx, int64(101), int64(9)).Return(false, nil).Once()
	r.repository.On("InsertWatch", r.ctx, in).Return(nil).Once()
	r.repository.On("WatchExists", r.ctx, int64(101), int64(9)).Return(true, nil).Once()

	outcome, err := r.usecase.MarkWatched(r.ctx, in)
	assert.NoError(t, err)
	assert.Equal(t, model.WatchInserted, outcome)

	_, err = r.usecase.MarkWatched(r.ctx, in)
	assert.ErrorIs(t, err, ErrAlreadyWatched)
	r.repository.AssertNumberOfCalls(t, "InsertWatch", 1)
}

func TestUsecaseCustomerUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseCustomerUnitSuite))
}
