package classify_test

import (
	"hash/fnv"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/leapstack-labs/sqldialect/pkg/classify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clickhouseAggregates = []string{"AVG", "COUNT", "MAX", "MIN", "STDDEV", "SUM", "ROW_NUMBER", "ROWNUMBER"}

func TestHash_MatchesFNV1aOnLowercase(t *testing.T) {
	for _, name := range []string{"", "AVG", "Row_Number", "count", "STDDEV"} {
		h := fnv.New64a()
		_, _ = h.Write([]byte(strings.ToLower(name)))
		assert.Equal(t, h.Sum64(), classify.Hash(name), name)
	}
}

func TestHash_CaseInsensitive(t *testing.T) {
	assert.Equal(t, classify.Hash("avg"), classify.Hash("AVG"))
	assert.Equal(t, classify.Hash("row_number"), classify.Hash("Row_Number"))
	assert.NotEqual(t, classify.Hash("avg"), classify.Hash("average"))
}

func TestBuild_SortedAndPlaced(t *testing.T) {
	table, err := classify.Build(clickhouseAggregates...)
	require.NoError(t, err)
	require.Equal(t, len(clickhouseAggregates), table.Len())

	names := table.Names()
	hashes := make([]uint64, len(names))
	for i, n := range names {
		hashes[i] = classify.Hash(n)
	}
	assert.True(t, slices.IsSorted(hashes), "hashes must be ascending")
	for i := 1; i < len(hashes); i++ {
		assert.Less(t, hashes[i-1], hashes[i])
	}
	assert.ElementsMatch(t, clickhouseAggregates, names)
}

func TestContains(t *testing.T) {
	table := classify.MustBuild(clickhouseAggregates...)

	tests := []struct {
		name string
		want bool
	}{
		{"avg", true},
		{"AVG", true},
		{"Avg", true},
		{"row_number", true},
		{"RowNumber", true},
		{"stddev", true},
		{"AVERAGE", false},
		{"COUNT_DISTINCT", false},
		{"", false},
		{"sum ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Contains(tt.name))
		})
	}
}

func TestContains_EveryCaseVariant(t *testing.T) {
	table := classify.MustBuild(clickhouseAggregates...)
	for _, name := range clickhouseAggregates {
		lower := strings.ToLower(name)
		variants := []string{name, lower, strings.ToUpper(lower[:1]) + lower[1:]}
		// alternate case letter by letter
		b := []byte(lower)
		for i := range b {
			if i%2 == 0 && b[i] >= 'a' && b[i] <= 'z' {
				b[i] -= 'a' - 'A'
			}
		}
		variants = append(variants, string(b))
		for _, v := range variants {
			assert.True(t, table.Contains(v), v)
		}
	}
}

func TestBuild_Duplicates(t *testing.T) {
	table, err := classify.Build("sum", "SUM", "Sum", "avg")
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.True(t, table.Contains("sum"))
}

func TestBuild_EmptyName(t *testing.T) {
	_, err := classify.Build("SUM", "")
	require.ErrorIs(t, err, classify.ErrEmptyName)
	assert.Panics(t, func() { classify.MustBuild("") })
}

func TestBuild_Empty(t *testing.T) {
	table, err := classify.Build()
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.False(t, table.Contains("avg"))
}

func TestNilTable(t *testing.T) {
	var table *classify.Table
	assert.False(t, table.Contains("avg"))
	assert.Equal(t, 0, table.Len())
	assert.Nil(t, table.Names())
}

func TestNames_ReturnsCopy(t *testing.T) {
	table := classify.MustBuild("SUM", "AVG")
	names := table.Names()
	names[0] = "CHANGED"
	assert.NotContains(t, table.Names(), "CHANGED")
}

func TestContains_Concurrent(t *testing.T) {
	table := classify.MustBuild(clickhouseAggregates...)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, n := range clickhouseAggregates {
				assert.True(t, table.Contains(strings.ToLower(n)))
			}
			assert.False(t, table.Contains("AVERAGE"))
		}()
	}
	wg.Wait()
}
