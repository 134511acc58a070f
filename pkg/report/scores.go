// 19 Mar 2025
// Numbers and pictures from the confidence scores. The per-residue
// profile (pLDDT style, 0 to 1) gets a five number summary and,
// if anyone asks, a plot.

package report

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// A ScoreSummary condenses a per-residue confidence profile.
type ScoreSummary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func (s ScoreSummary) String() string {
	return fmt.Sprintf("n %d mean %.3f sd %.3f min %.3f max %.3f",
		s.N, s.Mean, s.StdDev, s.Min, s.Max)
}

// Summarise computes the summary of a score profile. An empty profile
// gives the zero summary rather than NaNs.
func Summarise(scores []float64) ScoreSummary {
	if len(scores) == 0 {
		return ScoreSummary{}
	}
	return ScoreSummary{
		N:      len(scores),
		Mean:   stat.Mean(scores, nil),
		StdDev: stat.StdDev(scores, nil),
		Min:    floats.Min(scores),
		Max:    floats.Max(scores),
	}
}

// PairMatrix turns a decoded pairwise score table, a JSON list of
// lists, into a dense matrix. Ragged or empty input gives nil.
func PairMatrix(v any) *mat.Dense {
	rows, ok := v.([]any)
	if !ok || len(rows) == 0 {
		return nil
	}
	ncol := 0
	var data []float64
	for i, r := range rows {
		fl := Floats(r)
		if i == 0 {
			ncol = len(fl)
		}
		if len(fl) != ncol || ncol == 0 {
			return nil
		}
		data = append(data, fl...)
	}
	return mat.NewDense(len(rows), ncol, data)
}

// InterChainMean is the average of the off-diagonal entries of a
// pairwise chain matrix, the usual single number for how confidently
// two chains are placed against each other. A 1x1 matrix has no
// off-diagonal and gives 0.
func InterChainMean(m *mat.Dense) float64 {
	if m == nil {
		return 0
	}
	r, c := m.Dims()
	var sum float64
	var n int
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if i == j {
				continue
			}
			sum += m.At(i, j)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// PlotProfile draws the per-residue confidence as a line and writes
// it to fname. The picture format follows the extension, .png being
// the usual choice. startRes numbers the x axis, so a renumbered
// domain plots against its biological numbering.
func PlotProfile(scores []float64, startRes int, title, fname string) error {
	if len(scores) == 0 {
		return fmt.Errorf("no scores to plot")
	}
	pts := make(plotter.XYs, len(scores))
	for i, v := range scores {
		pts[i].X = float64(startRes + i)
		pts[i].Y = v
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "residue"
	p.Y.Label.Text = "confidence"
	p.Y.Min = 0
	p.Y.Max = 1
	p.Add(plotter.NewGrid())
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	return p.Save(16*vg.Centimeter, 8*vg.Centimeter, fname)
}
