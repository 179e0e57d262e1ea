// Package optim sweeps controller gains over value grids and ranks the
// combinations by a closed-loop run metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/steersim/internal/experiment"
)

// ErrUnknownMetric reports a metric name the experiment does not produce.
var ErrUnknownMetric = errors.New("unknown result metric")

// Builder constructs a ready-to-run experiment for one gain combination.
type Builder func(gains map[string]float64) (*experiment.Experiment, error)

// Point is one evaluated gain combination.
type Point struct {
	Gains   map[string]float64
	Score   float64
	Skipped bool // build or run failed, e.g. a gain outside its valid range
}

// Result holds the winning combination and the full evaluation trace in
// grid order.
type Result struct {
	Best  map[string]float64
	Score float64
	Trace []Point
}

// GridSearch evaluates the cross product of per-gain value grids.
type GridSearch struct {
	names []string
	grids [][]float64
}

func NewGridSearch(names []string, grids [][]float64) (*GridSearch, error) {
	if len(names) != len(grids) {
		return nil, fmt.Errorf("gain names and value grids mismatch: %d vs %d", len(names), len(grids))
	}
	for i, grid := range grids {
		if len(grid) == 0 {
			return nil, fmt.Errorf("empty value grid for %s", names[i])
		}
	}
	return &GridSearch{names: names, grids: grids}, nil
}

// Combinations reports the grid size.
func (g *GridSearch) Combinations() int {
	n := 1
	for _, grid := range g.grids {
		n *= len(grid)
	}
	return n
}

// Search runs every combination and returns the minimizer of metricName.
// Combinations that fail to build or run are recorded as skipped; a metric
// name no run produces is an error rather than a silent zero.
func (g *GridSearch) Search(ctx context.Context, build Builder, metricName string) (*Result, error) {
	res := &Result{Score: math.Inf(1), Trace: make([]Point, 0, g.Combinations())}

	idx := make([]int, len(g.grids))
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		gains := make(map[string]float64, len(g.names))
		for i, name := range g.names {
			gains[name] = g.grids[i][idx[i]]
		}
		pt := Point{Gains: gains, Skipped: true}

		if exp, err := build(gains); err == nil {
			if run, err := exp.Run(ctx); err == nil {
				score, ok := run.Metrics[metricName]
				if !ok {
					return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metricName)
				}
				pt.Score = score
				pt.Skipped = false
				if score < res.Score {
					res.Score = score
					res.Best = gains
				}
			}
		}
		res.Trace = append(res.Trace, pt)

		if !advance(idx, g.grids) {
			return res, nil
		}
	}
}

// advance steps idx as a mixed-radix counter, last gain fastest.
func advance(idx []int, grids [][]float64) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < len(grids[i]) {
			return true
		}
		idx[i] = 0
	}
	return false
}
