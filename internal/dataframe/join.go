package dataframe

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	xxhash "github.com/cespare/xxhash/v2"

	"github.com/paveg/reviewlens/internal/errors"
)

// Suffixes applied to colliding column names in a join result,
// left side first. Matches the pandas merge convention.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

const (
	hashIndexCapacityFactor = 1.5
	hashIndexLoadFactor     = 0.75
	hashIndexGrowthFactor   = 2
)

// LeftJoin joins right onto df matching rows on the named key column,
// keeping every left row. Unmatched left rows receive nulls for all
// right-side columns. The key must exist on both sides; rows whose key
// is null on either side never match. Colliding non-key column names
// are suffixed "_x" (left) and "_y" (right).
func (df *DataFrame) LeftJoin(right *DataFrame, key string) (*DataFrame, error) {
	leftKey, exists := df.Column(key)
	if !exists {
		return nil, errors.NewColumnNotFoundError("join", key)
	}
	rightKey, exists := right.Column(key)
	if !exists {
		return nil, errors.NewColumnNotFoundError("join", key)
	}

	// Index the right side by key.
	idx := newHashIndex(right.Len())
	for i := 0; i < right.Len(); i++ {
		if rightKey.IsNull(i) {
			continue
		}
		idx.Put(rightKey.GetAsString(i), i)
	}

	// Probe with every left row; unmatched rows keep -1 markers.
	var leftIndices, rightIndices []int
	for i := 0; i < df.Len(); i++ {
		if !leftKey.IsNull(i) {
			if rows, ok := idx.Get(leftKey.GetAsString(i)); ok {
				for _, r := range rows {
					leftIndices = append(leftIndices, i)
					rightIndices = append(rightIndices, r)
				}
				continue
			}
		}
		leftIndices = append(leftIndices, i)
		rightIndices = append(rightIndices, -1)
	}

	return df.buildJoinResult(right, key, leftIndices, rightIndices), nil
}

// buildJoinResult materializes the joined table: left columns first,
// then right columns minus the key, suffixing collisions.
func (df *DataFrame) buildJoinResult(
	right *DataFrame, key string, leftIndices, rightIndices []int,
) *DataFrame {
	mem := memory.NewGoAllocator()

	collides := make(map[string]bool)
	for _, name := range df.order {
		if name != key && right.HasColumn(name) {
			collides[name] = true
		}
	}

	result := make([]ISeries, 0, df.Width()+right.Width())

	for _, name := range df.order {
		col := takeColumn(df.columns[name], leftIndices, mem)
		if collides[name] {
			col = Renamed(col, name+LeftSuffix)
		}
		result = append(result, col)
	}

	for _, name := range right.order {
		if name == key {
			continue
		}
		col := takeColumn(right.columns[name], rightIndices, mem)
		if collides[name] {
			col = Renamed(col, name+RightSuffix)
		}
		result = append(result, col)
	}

	return New(result...)
}

// hashIndex maps join-key strings to row numbers using xxhash buckets.
type hashIndex struct {
	buckets  [][]indexEntry
	capacity int
	size     int
}

type indexEntry struct {
	key  string
	rows []int
}

func newHashIndex(estimatedSize int) *hashIndex {
	capacity := nextPowerOfTwo(int(float64(estimatedSize)*hashIndexCapacityFactor) + 1)
	return &hashIndex{
		buckets:  make([][]indexEntry, capacity),
		capacity: capacity,
	}
}

// Put records a row number for a key.
func (h *hashIndex) Put(key string, row int) {
	bucketIdx := h.bucketFor(key, h.capacity)

	for i := range h.buckets[bucketIdx] {
		if h.buckets[bucketIdx][i].key == key {
			h.buckets[bucketIdx][i].rows = append(h.buckets[bucketIdx][i].rows, row)
			return
		}
	}

	h.buckets[bucketIdx] = append(h.buckets[bucketIdx], indexEntry{key: key, rows: []int{row}})
	h.size++

	if float64(h.size) > float64(h.capacity)*hashIndexLoadFactor {
		h.resize()
	}
}

// Get retrieves the row numbers recorded for a key.
func (h *hashIndex) Get(key string) ([]int, bool) {
	bucketIdx := h.bucketFor(key, h.capacity)
	for _, entry := range h.buckets[bucketIdx] {
		if entry.key == key {
			return entry.rows, true
		}
	}
	return nil, false
}

func (h *hashIndex) bucketFor(key string, capacity int) int {
	hash := xxhash.Sum64String(key)
	return int(hash & uint64(capacity-1))
}

// resize doubles the capacity and rehashes all entries.
func (h *hashIndex) resize() {
	newCapacity := h.capacity * hashIndexGrowthFactor
	newBuckets := make([][]indexEntry, newCapacity)

	for _, bucket := range h.buckets {
		for _, entry := range bucket {
			idx := h.bucketFor(entry.key, newCapacity)
			newBuckets[idx] = append(newBuckets[idx], entry)
		}
	}

	h.buckets = newBuckets
	h.capacity = newCapacity
}

func nextPowerOfTwo(n int) int {
	power := 1
	for power < n {
		power *= 2
	}
	return power
}
