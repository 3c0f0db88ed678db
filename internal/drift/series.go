package drift

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/plot/plotutil"
)

// Point is the aggregate of every simulation at one step.
type Point struct {
	Step float64
	N    int
	Mean float64
	// Low and High bound the 95% confidence interval of the mean.
	Low, High float64
}

// Series is the drift over steps for one communication radius.
type Series struct {
	R      string
	Points []Point
}

// Aggregate groups rows by radius and step. Steps seen more than once (one
// row per simulation) collapse to their mean with a 95% confidence interval.
// Series are ordered by radius, numerically when every radius parses as a
// number; points are ordered by step.
func Aggregate(rows []Row) []Series {
	byR := make(map[string]map[float64][]float64)
	for _, row := range rows {
		steps, ok := byR[row.R]
		if !ok {
			steps = make(map[float64][]float64)
			byR[row.R] = steps
		}
		steps[row.Step] = append(steps[row.Step], row.Drift)
	}

	radii := make([]string, 0, len(byR))
	for r := range byR {
		radii = append(radii, r)
	}
	sortRadii(radii)

	out := make([]Series, 0, len(radii))
	for _, r := range radii {
		steps := byR[r]
		s := Series{R: r, Points: make([]Point, 0, len(steps))}
		for step, vals := range steps {
			mean, lo, hi := plotutil.MeanAndConf95(vals)
			s.Points = append(s.Points, Point{
				Step: step,
				N:    len(vals),
				Mean: mean,
				Low:  mean - lo,
				High: mean + hi,
			})
		}
		sort.Slice(s.Points, func(i, j int) bool { return s.Points[i].Step < s.Points[j].Step })
		out = append(out, s)
	}
	return out
}

// LoadSeries reads the CSV at path and aggregates it.
func LoadSeries(path string) ([]Series, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	rows, err := t.Rows()
	if err != nil {
		return nil, err
	}
	return Aggregate(rows), nil
}

func sortRadii(radii []string) {
	nums := make(map[string]float64, len(radii))
	for _, r := range radii {
		v, err := strconv.ParseFloat(r, 64)
		if err != nil || math.IsNaN(v) {
			sort.Strings(radii)
			return
		}
		nums[r] = v
	}
	sort.Slice(radii, func(i, j int) bool {
		if nums[radii[i]] == nums[radii[j]] {
			return radii[i] < radii[j]
		}
		return nums[radii[i]] < nums[radii[j]]
	})
}
