package prediction

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
)

// LinearModel is a single-feature least squares fit y = Intercept + Slope*x.
type LinearModel struct {
	Intercept float64
	Slope     float64
}

// FitLinear fits y against x. A single point yields a flat line through it.
func FitLinear(x, y []float64) (*LinearModel, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%d x values but %d y values", len(x), len(y))
	}
	switch len(x) {
	case 0:
		return nil, apperrors.ErrNoTrainingData
	case 1:
		return &LinearModel{Intercept: y[0]}, nil
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return &LinearModel{Intercept: alpha, Slope: beta}, nil
}

func (m *LinearModel) Predict(x float64) float64 {
	return m.Intercept + m.Slope*x
}
