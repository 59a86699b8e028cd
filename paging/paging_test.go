package paging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagingData(t *testing.T) {
	for _, testcase := range []struct {
		name                      string
		page, total, page_size    int64
		expected_page, start, end int64
		expected_pages            int64
	}{
		{"First page", 1, 25, 10, 1, 0, 10, 3},
		{"Last partial page", 3, 25, 10, 3, 20, 25, 3},
		{"Past the last page", 9, 25, 10, 3, 20, 25, 3},
		{"Page zero", 0, 25, 10, 1, 0, 10, 3},
		{"Empty list", 1, 0, 10, 1, 0, 0, 1},
		{"Exact pages", 2, 20, 10, 2, 10, 20, 2},
		{"Default page size", 1, 120, 0, 1, 0, 50, 3},
	} {
		data := NewPagingData[string](testcase.page, testcase.total,
			testcase.page_size)
		assert.Equal(t, testcase.expected_page, data.Page, testcase.name)
		assert.Equal(t, testcase.start, data.StartIndex, testcase.name)
		assert.Equal(t, testcase.end, data.EndIndex, testcase.name)
		assert.Equal(t, testcase.expected_pages, data.Pages, testcase.name)
		assert.NotNil(t, data.Items, testcase.name)
	}
}

func TestPaginate(t *testing.T) {
	items := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	contains := func(items []string, keyword string) []string {
		result := []string{}
		for _, i := range items {
			if strings.Contains(i, keyword) {
				result = append(result, i)
			}
		}
		return result
	}

	data := Paginate(items, NewPagingQuery(2, 2, ""), nil)
	assert.Equal(t, []string{"gamma", "delta"}, data.Items)
	assert.Equal(t, int64(5), data.Total)

	data = Paginate(items, NewPagingQuery(1, 10, "ta"), contains)
	assert.Equal(t, []string{"beta", "delta"}, data.Items)
	assert.Equal(t, int64(2), data.Total)

	data = Paginate(items, NewPagingQuery(1, 10, "zzz"), contains)
	require.NotNil(t, data.Items)
	assert.Equal(t, 0, len(data.Items))
}
