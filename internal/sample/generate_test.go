package sample

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/config"
	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/drift"
	"github.com/FLAMEGPU/FLAMEGPU2-circles-benchmark-vis/internal/logging"
)

func smallOptions(dir string) Options {
	return Options{
		Dir:     dir,
		Agents:  24,
		Steps:   12,
		Radii:   []float64{2, 1},
		Sims:    2,
		Seed:    3,
		Workers: 2,
	}
}

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sample")
	opts := smallOptions(dir)
	opts.Video = true

	out, err := Generate(context.Background(), opts, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, config.DriftCSVFilename), out.CSV)
	require.Len(t, out.Snapshots, len(config.VisualizationFiles))
	for i, p := range out.Snapshots {
		assert.Equal(t, config.VisualizationFiles[i], filepath.Base(p))
		assert.FileExists(t, p)
	}

	info, err := os.Stat(out.Video)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	tbl, err := drift.Load(out.CSV)
	require.NoError(t, err)
	assert.True(t, tbl.Has(drift.ColRadius))
	assert.Equal(t, 2*2*12, tbl.Len())

	rows, err := tbl.Rows()
	require.NoError(t, err)
	// Runs are written sorted by radius, then simulation, then step.
	assert.Equal(t, "1", rows[0].R)
	assert.Equal(t, 0.0, rows[0].Step)
	assert.Equal(t, "2", rows[len(rows)-1].R)
	assert.Equal(t, 11.0, rows[len(rows)-1].Step)
}

func TestGenerateIsReproducible(t *testing.T) {
	a := filepath.Join(t.TempDir(), "a")
	b := filepath.Join(t.TempDir(), "b")

	outA, err := Generate(context.Background(), smallOptions(a), logging.Discard())
	require.NoError(t, err)
	outB, err := Generate(context.Background(), smallOptions(b), logging.Discard())
	require.NoError(t, err)

	csvA, err := os.ReadFile(outA.CSV)
	require.NoError(t, err)
	csvB, err := os.ReadFile(outB.CSV)
	require.NoError(t, err)
	assert.Equal(t, csvA, csvB)
	assert.Empty(t, outA.Video)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, smallOptions(t.TempDir()), logging.Discard())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Options)
		want string
	}{
		{"agents", func(o *Options) { o.Agents = 0 }, "agents"},
		{"steps", func(o *Options) { o.Steps = 0 }, "steps"},
		{"no radii", func(o *Options) { o.Radii = nil }, "no radii"},
		{"radius", func(o *Options) { o.Radii = []float64{1, -2} }, "radius"},
		{"sims", func(o *Options) { o.Sims = 0 }, "sims"},
		{"dir", func(o *Options) { o.Dir = "" }, "directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := smallOptions(t.TempDir())
			tt.edit(&opts)
			_, err := Generate(context.Background(), opts, logging.Discard())
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestSnapshotStep(t *testing.T) {
	assert.Equal(t, 350, snapshotStep(350, 2500))
	assert.Equal(t, 12, snapshotStep(2500, 12))
	assert.Equal(t, 0, snapshotStep(0, 12))
}
