package dataframe

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// ISeries provides a type-erased interface for Series of any type
type ISeries interface {
	Name() string
	Len() int
	DataType() arrow.DataType
	IsNull(index int) bool
	String() string
	Array() arrow.Array
	Release()
	GetAsString(index int) string
}

// renamedSeries presents an existing series under a different name.
type renamedSeries struct {
	ISeries
	name string
}

func (r *renamedSeries) Name() string { return r.name }

// Renamed returns a view of s under the given column name. The
// underlying Arrow data is shared, not copied.
func Renamed(s ISeries, name string) ISeries {
	if s.Name() == name {
		return s
	}
	return &renamedSeries{ISeries: s, name: name}
}
