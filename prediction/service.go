package prediction

import (
	"fmt"
	"math"
	"slices"

	"github.com/jrsteele09/go-school-insights/datasets"
	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
)

// Column names the models train on
const (
	ColumnScore      = "score"
	ColumnAttendance = "attendance"
	ColumnBehavior   = "behavior"
	ColumnDropout    = "dropout"
	ColumnMonth      = "month"
	ColumnAmount     = "amount"
)

// DropoutFeatures is the classifier's feature order.
var DropoutFeatures = []string{ColumnScore, ColumnAttendance, ColumnBehavior}

// TableSource gives the service access to the loaded datasets.
type TableSource interface {
	Table(name string) (*datasets.Table, error)
}

type Predictor interface {
	PredictDropout(score, attendance float64, behavior int) (int, error)
	PredictRevenue(monthIndex int) (float64, error)
}

// Service holds both fitted models. It is read-only after New returns.
type Service struct {
	dropout *Forest
	revenue *LinearModel
	months  []string
}

var _ Predictor = (*Service)(nil)

type Option func(*options)

type options struct {
	forest []ForestOption
}

func WithTrees(n int) Option {
	return func(o *options) { o.forest = append(o.forest, WithForestTrees(n)) }
}

func WithSeed(seed uint64) Option {
	return func(o *options) { o.forest = append(o.forest, WithForestSeed(seed)) }
}

// New fits the dropout classifier on the students table and the revenue
// regressor on the payments table.
func New(source TableSource, opts ...Option) (*Service, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	x, y, err := dropoutTrainingSet(source)
	if err != nil {
		return nil, fmt.Errorf("dropout model: %w", err)
	}
	forest, err := FitForest(x, y, o.forest...)
	if err != nil {
		return nil, fmt.Errorf("dropout model: %w", err)
	}

	months, totals, err := MonthlyRevenue(source)
	if err != nil {
		return nil, fmt.Errorf("revenue model: %w", err)
	}
	index := make([]float64, len(totals))
	for i := range index {
		index[i] = float64(i)
	}
	linear, err := FitLinear(index, totals)
	if err != nil {
		return nil, fmt.Errorf("revenue model: %w", err)
	}

	return &Service{dropout: forest, revenue: linear, months: months}, nil
}

// PredictDropout returns the predicted dropout label for one student.
// A Service not built by New returns ErrModelNotFitted.
func (s *Service) PredictDropout(score, attendance float64, behavior int) (int, error) {
	return s.dropout.Predict([]float64{score, attendance, float64(behavior)})
}

// PredictRevenue returns the fitted revenue at monthIndex, rounded to cents
// with halves going to the even cent. Index 0 is the earliest month in the
// payments table; any index is accepted.
func (s *Service) PredictRevenue(monthIndex int) (float64, error) {
	if s.revenue == nil {
		return 0, apperrors.ErrModelNotFitted
	}
	return roundCents(s.revenue.Predict(float64(monthIndex))), nil
}

func roundCents(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

// Months returns the month keys in training order, so index i is Months()[i].
func (s *Service) Months() []string {
	return slices.Clone(s.months)
}

func (s *Service) Revenue() LinearModel {
	if s.revenue == nil {
		return LinearModel{}
	}
	return *s.revenue
}

// dropoutTrainingSet skips students with a missing feature or label.
func dropoutTrainingSet(source TableSource) ([][]float64, []int, error) {
	table, err := source.Table(datasets.TableStudents)
	if err != nil {
		return nil, nil, err
	}

	columns := make([][]datasets.Value, len(DropoutFeatures))
	for i, name := range DropoutFeatures {
		if columns[i], err = table.Column(name); err != nil {
			return nil, nil, err
		}
	}
	labels, err := table.Column(ColumnDropout)
	if err != nil {
		return nil, nil, err
	}

	var (
		x [][]float64
		y []int
	)
rows:
	for r := range labels {
		label, ok := labels[r].Int()
		if !ok {
			continue
		}
		sample := make([]float64, len(columns))
		for c := range columns {
			v, ok := columns[c][r].Float()
			if !ok {
				continue rows
			}
			sample[c] = v
		}
		x = append(x, sample)
		y = append(y, int(label))
	}
	if len(x) == 0 {
		return nil, nil, apperrors.ErrNoTrainingData
	}
	return x, y, nil
}

// MonthlyRevenue sums payment amounts per month. Months are ordered numerically
// when both keys are numbers, otherwise lexically. Rows without a month are
// dropped and missing amounts count as zero.
func MonthlyRevenue(source TableSource) ([]string, []float64, error) {
	table, err := source.Table(datasets.TablePayments)
	if err != nil {
		return nil, nil, err
	}
	months, err := table.Column(ColumnMonth)
	if err != nil {
		return nil, nil, err
	}
	amounts, err := table.Column(ColumnAmount)
	if err != nil {
		return nil, nil, err
	}

	totals := map[string]float64{}
	var keys []datasets.Value
	for r, month := range months {
		if month.IsNull() {
			continue
		}
		key := month.String()
		if _, seen := totals[key]; !seen {
			keys = append(keys, month)
			totals[key] = 0
		}
		if amount, ok := amounts[r].Float(); ok {
			totals[key] += amount
		}
	}
	if len(keys) == 0 {
		return nil, nil, apperrors.ErrNoTrainingData
	}

	slices.SortStableFunc(keys, datasets.Compare)
	names := make([]string, len(keys))
	sums := make([]float64, len(keys))
	for i, k := range keys {
		names[i] = k.String()
		sums[i] = totals[names[i]]
	}
	return names, sums, nil
}
