package bench_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faststring/internal/core/domain"
	"go.trai.ch/faststring/internal/core/ports"
	"go.trai.ch/faststring/internal/core/ports/mocks"
	"go.trai.ch/faststring/internal/engine/bench"
	"go.uber.org/mock/gomock"
)

type runnerMocks struct {
	telemetry *mocks.MockTelemetry
	vertex    *mocks.MockVertex
	logger    *mocks.MockLogger
}

// setupRunnerTest creates a runner whose telemetry hands out one shared vertex.
func setupRunnerTest(t *testing.T) (*bench.Runner, runnerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := runnerMocks{
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
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	return bench.NewRunner(m.telemetry, m.logger), m
}

func fewIterations() map[domain.SizeClass]int {
	return map[domain.SizeClass]int{
		domain.SizeSmall:  64,
		domain.SizeMedium: 8,
		domain.SizeLarge:  2,
	}
}

func TestRun_AllScenarios(t *testing.T) {
	runner, m := setupRunnerTest(t)
	m.vertex.EXPECT().Complete(nil).Times(len(domain.Operations) * len(domain.SizeClasses))

	scenarios := domain.Scenarios(domain.Operations, domain.SizeClasses, fewIterations())
	got, err := runner.Run(context.Background(), scenarios, bench.Options{Parallelism: 1, Readers: 4, Seed: 1})
	require.NoError(t, err)
	require.Len(t, got, len(scenarios))

	for i, sc := range scenarios {
		assert.Equal(t, sc.Name(), got[i].Scenario)
		assert.Equal(t, sc.Iterations, got[i].Iterations)
		assert.NotZero(t, got[i].Digest, sc.Name())
		assert.False(t, got[i].Timestamp.IsZero())
	}
}

func TestRun_Deterministic(t *testing.T) {
	runner, m := setupRunnerTest(t)
	m.vertex.EXPECT().Complete(nil).AnyTimes()

	scenarios := domain.Scenarios(
		[]domain.Operation{domain.OpFrom, domain.OpPushStr, domain.OpRemove},
		[]domain.SizeClass{domain.SizeSmall, domain.SizeMedium},
		fewIterations(),
	)

	sequential, err := runner.Run(context.Background(), scenarios, bench.Options{Parallelism: 1, Seed: 7})
	require.NoError(t, err)
	parallel, err := runner.Run(context.Background(), scenarios, bench.Options{Parallelism: 4, Seed: 7})
	require.NoError(t, err)
	reseeded, err := runner.Run(context.Background(), scenarios, bench.Options{Parallelism: 1, Seed: 8})
	require.NoError(t, err)

	for i := range scenarios {
		assert.Equal(t, sequential[i].Digest, parallel[i].Digest, scenarios[i].Name())
	}
	assert.NotEqual(t, sequential[0].Digest, reseeded[0].Digest, "a new seed must change the inputs")
}

func TestRun_SelectionDoesNotChangeInputs(t *testing.T) {
	runner, m := setupRunnerTest(t)
	m.vertex.EXPECT().Complete(nil).AnyTimes()

	one := domain.Scenarios([]domain.Operation{domain.OpPush}, []domain.SizeClass{domain.SizeMedium}, fewIterations())
	all := domain.Scenarios(domain.Operations, []domain.SizeClass{domain.SizeMedium}, fewIterations())

	alone, err := runner.Run(context.Background(), one, bench.Options{Seed: 3})
	require.NoError(t, err)
	together, err := runner.Run(context.Background(), all, bench.Options{Seed: 3})
	require.NoError(t, err)

	assert.Equal(t, alone[0].Digest, together[2].Digest)
}

func TestRun_BufferAccounting(t *testing.T) {
	runner, m := setupRunnerTest(t)
	m.vertex.EXPECT().Complete(nil).AnyTimes()

	scenarios := []domain.Scenario{
		{Op: domain.OpFrom, Size: domain.SizeMedium, Iterations: 10},
		{Op: domain.OpClone, Size: domain.SizeMedium, Iterations: 40},
		{Op: domain.OpFrom, Size: domain.SizeSmall, Iterations: 10},
		{Op: domain.OpSharedRead, Size: domain.SizeMedium, Iterations: 40},
	}

	got, err := runner.Run(context.Background(), scenarios, bench.Options{Parallelism: 1, Readers: 4})
	require.NoError(t, err)

	assert.Equal(t, uint64(10), got[0].Allocs, "each medium From allocates one buffer")
	assert.Equal(t, uint64(16), got[1].Allocs, "clones share the buffers of their bases")
	assert.Zero(t, got[2].Allocs, "small text stays inline")
	assert.Equal(t, uint64(1), got[3].Allocs, "readers share one buffer")
	assert.Zero(t, got[3].Copies)
}

func TestRun_NoScenarios(t *testing.T) {
	runner, _ := setupRunnerTest(t)

	_, err := runner.Run(context.Background(), nil, bench.Options{})
	require.ErrorIs(t, err, domain.ErrNoScenarios)
}

func TestRun_ResultMismatch(t *testing.T) {
	runner, m := setupRunnerTest(t)
	bench.CorruptBaseline(t, domain.OpPush)
	m.vertex.EXPECT().Complete(gomock.Not(gomock.Nil())).Times(1)

	_, err := runner.Run(context.Background(), []domain.Scenario{
		{Op: domain.OpPush, Size: domain.SizeSmall, Iterations: 4},
	}, bench.Options{})
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrResultMismatch.Error())
	require.ErrorContains(t, err, "workload digests differ")
}

func TestRun_UnknownOperation(t *testing.T) {
	runner, m := setupRunnerTest(t)
	m.vertex.EXPECT().Complete(gomock.Not(gomock.Nil())).Times(1)

	_, err := runner.Run(context.Background(), []domain.Scenario{
		{Op: "insert", Size: domain.SizeSmall, Iterations: 1},
	}, bench.Options{})
	require.ErrorContains(t, err, domain.ErrUnknownOperation.Error())
}

func TestRun_Cancelled(t *testing.T) {
	runner, _ := setupRunnerTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, domain.Scenarios(domain.Operations, domain.SizeClasses, fewIterations()), bench.Options{})
	require.ErrorIs(t, err, context.Canceled)
}
