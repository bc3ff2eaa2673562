package datasets

import (
	"fmt"

	apperrors "github.com/jrsteele09/go-school-insights/internal/errors"
)

// Reporter serves whole tables
type Reporter interface {
	ReportAll(table string) ([]Row, error)
}

// Store holds the tables loaded at startup. It is never modified afterwards,
// so concurrent reads are safe without locking.
type Store struct {
	tables map[string]*Table
}

var _ Reporter = (*Store)(nil)

func NewStore(tables ...*Table) (*Store, error) {
	s := &Store{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		if _, exists := s.tables[t.Name]; exists {
			return nil, fmt.Errorf("duplicate table %s", t.Name)
		}
		s.tables[t.Name] = t
	}
	return s, nil
}

// Table returns the named table or ErrTableNotFound.
func (s *Store) Table(name string) (*Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrTableNotFound, "%s", name)
	}
	return t, nil
}

// ReportAll returns every row of table in load order.
func (s *Store) ReportAll(table string) ([]Row, error) {
	t, err := s.Table(table)
	if err != nil {
		return nil, err
	}
	return t.Rows(), nil
}
