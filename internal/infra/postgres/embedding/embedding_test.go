//go:build !integration

package infra_postgres_embedding

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
)

type EmbeddingInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	mock   sqlmock.Sqlmock
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	return &resources{
		mock:   mock,
		driver: New(sqlx.NewDb(db, "sqlmock"), "public"),
		ctx:    context.Background(),
	}
}

func validEmbedding() model.Embedding {
	return model.Embedding{0.1, 0.2, 0.3}
}

var neighbourColumns = []string{"movie_id", "title", "genres", "summary", "rating", "poster_url", "distance"}

func (suite *EmbeddingInfraUnitSuite) TestNearest(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		k             int
		setupMocks    func(r *resources)
		expectError   bool
		errorType     error
		errorContains string
		expectScores  []float64
	}{
		{
			name: "Should rank by cosine distance",
			k:    3,
			setupMocks: func(r *resources) {
				rows := sqlmock.NewRows(neighbourColumns).
					AddRow(int64(1), "Alien", []byte(`{}`), "In space", 8.5, "https://img/1.jpg", 0.25).
					AddRow(int64(2), "Up", []byte(`{}`), "Balloons", 8.2, nil, 1.4)
				r.mock.ExpectQuery(regexp.QuoteMeta(`v.embedding <=> $1 AS distance`)).
					WithArgs(pgvector.NewVector(validEmbedding()), 3).
					WillReturnRows(rows)
			},
			expectScores: []float64{0.75, 0},
		},
		{
			name:        "Should reject non-positive k",
			k:           0,
			setupMocks:  func(r *resources) {},
			expectError: true,
			errorType:   ErrInvalidK,
		},
		{
			name: "Should wrap query failure",
			k:    3,
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("movie_vectors").
					WillReturnError(errors.New(`type "vector" does not exist`))
			},
			expectError:   true,
			errorContains: "failed to query nearest movies",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			hits, err := r.driver.Nearest(r.ctx, validEmbedding(), tc.k)

			if tc.expectError {
				if tc.errorType != nil {
					assert.ErrorIs(t, err, tc.errorType)
				}
				assert.ErrorContains(t, err, tc.errorContains)
			} else {
				assert.NoError(t, err)
				scores := make([]float64, len(hits))
				for i, h := range hits {
					scores[i] = h.Score
				}
				assert.Equal(t, tc.expectScores, scores)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (suite *EmbeddingInfraUnitSuite) TestScoreFromDistance(t provider.T) {
	t.Parallel()

	testCases := []struct {
		distance, expected float64
	}{
		{0, 1},
		{0.5, 0.5},
		{2, 0},
		{-0.5, 1},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ScoreFromDistance(tc.distance))
	}
}

func TestEmbeddingInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(EmbeddingInfraUnitSuite))
}
