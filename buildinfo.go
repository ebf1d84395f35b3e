package csrt

import (
	"time"

	"github.com/oarkflow/xid"
)

// BuildReport summarises one Construct call: how many pairs went in, how
// large the resulting flat array is, its checksum, and how long building
// took.
type BuildReport struct {
	ID       string
	KeyCount int
	TreeSize int
	Checksum uint64
	Elapsed  time.Duration
}

// BuildWithReport runs Construct and additionally returns a BuildReport
// describing the result.
func BuildWithReport[V any](pairs []Pair[V], opts ...BuildOption) (*Container[V], BuildReport, error) {
	start := time.Now()
	c, err := Construct(pairs, opts...)
	if err != nil {
		return nil, BuildReport{}, err
	}
	report := BuildReport{
		ID:       xid.New().String(),
		KeyCount: c.Len(),
		TreeSize: c.TreeSize(),
		Checksum: c.Checksum(),
		Elapsed:  time.Since(start),
	}
	return c, report, nil
}
