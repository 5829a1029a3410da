package check_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faststring/internal/core/domain"
	"go.trai.ch/faststring/internal/core/ports"
	"go.trai.ch/faststring/internal/core/ports/mocks"
	"go.trai.ch/faststring/internal/engine/check"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type checkerMocks struct {
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex
	logger    *mocks.MockLogger
}

func setupCheckerTest(t *testing.T) (*check.Checker, checkerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := checkerMocks{
		telemetry: mocks.NewMockTelemetry(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}

	m.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, m.vertex
		},
	).AnyTimes()
	m.vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	return check.NewChecker(m.telemetry, m.logger), m
}

func TestRun_Passes(t *testing.T) {
	checker, m := setupCheckerTest(t)
	m.vertex.EXPECT().Complete(nil).Times(8)

	report, err := checker.Run(context.Background(), check.Options{Seeds: 8, Commands: 300, Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, 8, report.Seeds)
	assert.Equal(t, 8*300, report.Commands)
	assert.Positive(t, report.Clones)
	assert.Positive(t, report.Removals)
}

func TestRun_Deterministic(t *testing.T) {
	checker, m := setupCheckerTest(t)
	m.vertex.EXPECT().Complete(nil).AnyTimes()

	opts := check.Options{Seeds: 4, Commands: 200, Seed: 42}
	first, err := checker.Run(context.Background(), opts)
	require.NoError(t, err)

	opts.Parallelism = 1
	second, err := checker.Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_NoCommands(t *testing.T) {
	checker, m := setupCheckerTest(t)
	m.vertex.EXPECT().Complete(nil).Times(2)

	report, err := checker.Run(context.Background(), check.Options{Seeds: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.CheckReport{Seeds: 2}, report)
}

func TestRun_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts check.Options
		key  string
	}{
		{name: "no seeds", opts: check.Options{Commands: 10}, key: "seeds"},
		{name: "negative commands", opts: check.Options{Seeds: 1, Commands: -1}, key: "commands"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker, _ := setupCheckerTest(t)

			_, err := checker.Run(context.Background(), tt.opts)
			require.Error(t, err)
			require.ErrorContains(t, err, domain.ErrInvalidConfig.Error())

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			assert.Contains(t, zErr.Metadata(), tt.key)
		})
	}
}

func TestRun_Divergence(t *testing.T) {
	checker, m := setupCheckerTest(t)
	check.CorruptOracle(t, domain.CmdPush)
	m.vertex.EXPECT().Complete(gomock.Not(gomock.Nil())).Times(1)

	_, err := checker.Run(context.Background(), check.Options{Seeds: 1, Commands: 200, Seed: 5})
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrModelDivergence.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	meta := zErr.Metadata()
	assert.Equal(t, 0, meta["seed"])
	assert.Positive(t, meta["step"])
	command, _ := meta["command"].(string)
	assert.True(t, strings.HasPrefix(command, "push("), "command %q", command)
}

func TestRun_Cancelled(t *testing.T) {
	checker, m := setupCheckerTest(t)
	m.vertex.EXPECT().Complete(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := checker.Run(ctx, check.Options{Seeds: 4, Commands: 100})
	require.ErrorIs(t, err, context.Canceled)
}
