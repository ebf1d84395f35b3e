package csrt

import (
	"context"
	"fmt"

	reflect "github.com/goccy/go-reflect"
	"github.com/oarkflow/filters"
)

// PairSource produces the sorted, duplicate-free pairs Construct needs.
// Implementations are free to read from memory, a database, or anywhere
// else; Construct itself never cares how its input was assembled.
type PairSource[V any] interface {
	Pairs(ctx context.Context) ([]Pair[V], error)
}

// SliceSource adapts an in-memory slice of pairs into a PairSource. Each
// Pairs call returns a sorted copy, so callers don't have to pre-sort by
// hand; the wrapped slice itself is left in its original order.
type SliceSource[V any] struct {
	pairs []Pair[V]
}

// NewSliceSource wraps pairs, which need not already be sorted.
func NewSliceSource[V any](pairs []Pair[V]) *SliceSource[V] {
	return &SliceSource[V]{pairs: pairs}
}

func (s *SliceSource[V]) Pairs(_ context.Context) ([]Pair[V], error) {
	out := make([]Pair[V], len(s.pairs))
	copy(out, s.pairs)
	SortPairs(out)
	return out, nil
}

// KeyFunc extracts a Key from a record of type R.
type KeyFunc[R any] func(R) Key

// StructSource builds pairs from a slice of arbitrary records by pulling a
// key out of each one via KeyFunc and using the record itself (or a
// derived value) as V. It uses goccy/go-reflect, which is a drop-in
// replacement for the standard reflect package, to read struct fields by
// name when KeyFunc delegates to FieldKey.
type StructSource[R, V any] struct {
	records []R
	key     KeyFunc[R]
	value   func(R) V
}

// NewStructSource builds a StructSource from records, extracting each
// pair's key with key and its value with value.
func NewStructSource[R, V any](records []R, key KeyFunc[R], value func(R) V) *StructSource[R, V] {
	return &StructSource[R, V]{records: records, key: key, value: value}
}

func (s *StructSource[R, V]) Pairs(_ context.Context) ([]Pair[V], error) {
	pairs := make([]Pair[V], len(s.records))
	for i, rec := range s.records {
		pairs[i] = Pair[V]{Key: s.key(rec), Value: s.value(rec)}
	}
	SortPairs(pairs)
	return pairs, nil
}

// FieldKey returns a KeyFunc that reads field (by name) off each record via
// reflection and encodes it as a Key, for callers whose key lives in a
// struct field they'd rather not write an accessor for.
func FieldKey[R any](field string) KeyFunc[R] {
	return func(rec R) Key {
		v := reflect.ValueOf(rec)
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		fv := v.FieldByName(field)
		return StringKey(fmt.Sprint(fv.Interface()))
	}
}

// FilteredSource wraps another PairSource and drops any pair whose value,
// converted to a record via toRecord, does not match rule.
type FilteredSource[V any] struct {
	inner    PairSource[V]
	rule     *filters.Rule
	toRecord func(V) map[string]any
}

// NewFilteredSource wraps inner, keeping only pairs whose value (converted
// to a record via toRecord) satisfies rule.
func NewFilteredSource[V any](inner PairSource[V], rule *filters.Rule, toRecord func(V) map[string]any) *FilteredSource[V] {
	return &FilteredSource[V]{inner: inner, rule: rule, toRecord: toRecord}
}

func (s *FilteredSource[V]) Pairs(ctx context.Context) ([]Pair[V], error) {
	all, err := s.inner.Pairs(ctx)
	if err != nil {
		return nil, err
	}
	kept := make([]Pair[V], 0, len(all))
	for _, p := range all {
		if s.rule.Match(s.toRecord(p.Value)) {
			kept = append(kept, p)
		}
	}
	return kept, nil
}
