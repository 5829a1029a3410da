package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/faststring/cmd/faststring/commands"
	"go.trai.ch/faststring/internal/app"
	"go.trai.ch/faststring/internal/build"
	"go.trai.ch/faststring/internal/core/domain"
)

type mockApp struct {
	benchFunc   func(ctx context.Context, opts app.BenchOptions) ([]domain.Measurement, error)
	checkFunc   func(ctx context.Context, opts app.CheckOptions) (domain.CheckReport, error)
	metricsFunc func() ([]domain.Sample, error)
}

func (m *mockApp) Bench(ctx context.Context, opts app.BenchOptions) ([]domain.Measurement, error) {
	if m.benchFunc != nil {
		return m.benchFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockApp) Check(ctx context.Context, opts app.CheckOptions) (domain.CheckReport, error) {
	if m.checkFunc != nil {
		return m.checkFunc(ctx, opts)
	}
	return domain.CheckReport{}, nil
}

func (m *mockApp) Metrics() ([]domain.Sample, error) {
	if m.metricsFunc != nil {
		return m.metricsFunc()
	}
	return nil, nil
}

func TestCommands_Bench(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.BenchOptions
		mock := &mockApp{
			benchFunc: func(_ context.Context, opts app.BenchOptions) ([]domain.Measurement, error) {
				captured = opts
				return nil, nil
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"bench", "-c", "other.yaml", "--op", "push,clone", "--size", "large", "--save", "-p", "3"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.BenchOptions{
			ConfigPath:  "other.yaml",
			Ops:         []string{"push", "clone"},
			Sizes:       []string{"large"},
			Parallelism: 3,
			Save:        true,
		}, captured)
	})

	t.Run("renders results", func(t *testing.T) {
		mock := &mockApp{
			benchFunc: func(_ context.Context, _ app.BenchOptions) ([]domain.Measurement, error) {
				return []domain.Measurement{
					{Scenario: "push/small", BaselineNs: 10, FastNs: 5, Ratio: 0.5, Allocs: 0},
					{Scenario: "clone/large", BaselineNs: 100, FastNs: 200, Ratio: 2, Allocs: 16},
				}, nil
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, new(bytes.Buffer))
		cli.SetArgs([]string{"bench"})

		require.NoError(t, cli.Execute(context.Background()))
		out := buf.String()
		assert.Contains(t, out, "scenario")
		assert.Contains(t, out, "push/small")
		assert.Contains(t, out, "clone/large")
		assert.Contains(t, out, "0.50")
		assert.Contains(t, out, "200.0")
	})

	t.Run("prints metrics on request", func(t *testing.T) {
		mock := &mockApp{
			metricsFunc: func() ([]domain.Sample, error) {
				return []domain.Sample{
					{Name: "faststring_ratio", Labels: map[string]string{"size": "small", "operation": "push"}, Value: 0.5},
					{Name: "faststring_buffer_allocations_total", Value: 12},
				}, nil
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, new(bytes.Buffer))
		cli.SetArgs([]string{"bench", "--metrics"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), `faststring_ratio{operation="push",size="small"} 0.5`)
		assert.Contains(t, buf.String(), "faststring_buffer_allocations_total 12")
	})

	t.Run("returns error on bench failure", func(t *testing.T) {
		mock := &mockApp{
			benchFunc: func(_ context.Context, _ app.BenchOptions) ([]domain.Measurement, error) {
				return nil, errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"bench"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects arguments", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"bench", "extra"})

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Check(t *testing.T) {
	var captured app.CheckOptions
	mock := &mockApp{
		checkFunc: func(_ context.Context, opts app.CheckOptions) (domain.CheckReport, error) {
			captured = opts
			return domain.CheckReport{Seeds: 4, Commands: 40, Clones: 9, Removals: 7}, nil
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, new(bytes.Buffer))
	cli.SetArgs([]string{"check", "--seeds", "4", "--commands", "10", "--seed", "99"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, app.CheckOptions{
		ConfigPath: commands.DefaultConfigPath,
		Seeds:      4,
		Commands:   10,
		Seed:       99,
	}, captured)
	assert.Contains(t, buf.String(), "4 sequences, 40 commands, 9 clones, 7 removals")
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), build.Version)
}
