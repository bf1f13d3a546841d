//go:build !integration

package fallback

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/humanbelnik/cinegraph/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type FallbackUnitSuite struct {
	suite.Suite
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (suite *FallbackUnitSuite) TestRun(t provider.T) {
	t.Parallel()

	errPrimary := errors.New("graph not defined")
	errSecondary := errors.New("table missing")

	testCases := []struct {
		name           string
		primary        Strategy[int]
		secondary      Strategy[int]
		expectValue    int
		expectMethod   model.Method
		expectError    bool
		errorIs        []error
	}{
		{
			name: "Should use primary result when primary succeeds",
			primary: Of(model.MethodPropertyGraph, func(ctx context.Context) (int, error) {
				return 1, nil
			}),
			expectValue:  1,
			expectMethod: model.MethodPropertyGraph,
		},
		{
			name: "Should fall back when primary fails",
			primary: Of(model.MethodPropertyGraph, func(ctx context.Context) (int, error) {
				return 0, errPrimary
			}),
			secondary: Of(model.MethodSQLFallback, func(ctx context.Context) (int, error) {
				return 2, nil
			}),
			expectValue:  2,
			expectMethod: model.MethodSQLFallback,
		},
		{
			name: "Should join both errors when both strategies fail",
			primary: Of(model.MethodPropertyGraph, func(ctx context.Context) (int, error) {
				return 0, errPrimary
			}),
			secondary: Of(model.MethodSQLFallback, func(ctx context.Context) (int, error) {
				return 0, errSecondary
			}),
			expectMethod: model.MethodSQLFallback,
			expectError:  true,
			errorIs:      []error{errPrimary, errSecondary},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()

			v, method, err := Run(context.Background(), discardLogger(), "test", tc.primary, tc.secondary)

			assert.Equal(t, tc.expectMethod, method)
			if tc.expectError {
				assert.Error(t, err)
				for _, target := range tc.errorIs {
					assert.ErrorIs(t, err, target)
				}
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectValue, v)
		})
	}
}

func (suite *FallbackUnitSuite) TestProbeIsNotCached(t provider.T) {
	t.Parallel()

	primaryCalls := 0
	primary := Of(model.MethodPropertyGraph, func(ctx context.Context) (string, error) {
		primaryCalls++
		return "", errors.New("unsupported")
	})
	secondary := Of(model.MethodSQLFallback, func(ctx context.Context) (string, error) {
		return "rows", nil
	})

	for i := 0; i < 3; i++ {
		_, method, err := Run(context.Background(), discardLogger(), "test", primary, secondary)
		assert.NoError(t, err)
		assert.Equal(t, model.MethodSQLFallback, method)
	}
	assert.Equal(t, 3, primaryCalls)
}

func (suite *FallbackUnitSuite) TestCancelledContextSkipsFallback(t provider.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	secondaryCalled := false
	primary := Of(model.MethodPropertyGraph, func(ctx context.Context) (int, error) {
		return 0, ctx.Err()
	})
	secondary := Of(model.MethodSQLFallback, func(ctx context.Context) (int, error) {
		secondaryCalled = true
		return 1, nil
	})

	_, _, err := Run(ctx, discardLogger(), "test", primary, secondary)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, secondaryCalled)
}

func TestFallbackUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(FallbackUnitSuite))
}
