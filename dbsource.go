package csrt

import (
	"context"
	"fmt"

	"github.com/oarkflow/squealx"
	"github.com/oarkflow/squealx/connection"
)

// DBConfig names a database to pull pairs from via DBSource.
type DBConfig struct {
	Host     string
	Port     int
	Driver   string
	Username string
	Password string
	Database string
	Query    string
}

// DBSource is a PairSource backed by a SQL query. Row returns the key and
// value for each row streamed back by the query.
type DBSource[V any] struct {
	cfg DBConfig
	row func(row map[string]any) (Key, V, error)
}

// NewDBSource builds a DBSource that connects per cfg and converts each
// returned row into a pair via row.
func NewDBSource[V any](cfg DBConfig, row func(map[string]any) (Key, V, error)) *DBSource[V] {
	return &DBSource[V]{cfg: cfg, row: row}
}

func (s *DBSource[V]) Pairs(_ context.Context) ([]Pair[V], error) {
	db, _, err := connection.FromConfig(squealx.Config{
		Host:     s.cfg.Host,
		Port:     s.cfg.Port,
		Driver:   s.cfg.Driver,
		Username: s.cfg.Username,
		Password: s.cfg.Password,
		Database: s.cfg.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("csrt: connect to database: %w", err)
	}
	defer db.Close()

	var pairs []Pair[V]
	err = squealx.SelectEach(db, func(row map[string]any) error {
		key, value, err := s.row(row)
		if err != nil {
			return err
		}
		pairs = append(pairs, Pair[V]{Key: key, Value: value})
		return nil
	}, s.cfg.Query)
	if err != nil {
		return nil, fmt.Errorf("csrt: query rows: %w", err)
	}

	SortPairs(pairs)
	return pairs, nil
}
