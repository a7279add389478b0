package pagination_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/advenue/foodadmin/internal/pagination"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		page, perPage, def, max int
		wantPage, wantPerPage   int
	}{
		{1, 15, 15, 100, 1, 15},
		{0, 0, 15, 100, 1, 15},
		{-3, -1, 15, 100, 1, 15},
		{2, 500, 15, 100, 2, 100},
		{7, 100, 15, 100, 7, 100},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%+v", tc), func(t *testing.T) {
			page, perPage := pagination.Clamp(tc.page, tc.perPage, tc.def, tc.max)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantPerPage, perPage)
		})
	}
}

func TestWindowAlignsToBatchBoundaries(t *testing.T) {
	// Pages 1-5 at size 15 share one 75-row batch starting at 0.
	for page := 1; page <= 5; page++ {
		offset, limit := pagination.Window(page, 15)
		assert.Equal(t, 0, offset, "page %d should be in the first batch", page)
		assert.Equal(t, 75, limit)
	}
	// Page 6 starts the next batch.
	offset, limit := pagination.Window(6, 15)
	assert.Equal(t, 75, offset)
	assert.Equal(t, 75, limit)

	// Page 10 is still inside the second batch.
	offset, _ = pagination.Window(10, 15)
	assert.Equal(t, 75, offset)

	// Page 11 opens the third.
	offset, _ = pagination.Window(11, 15)
	assert.Equal(t, 150, offset)
}

func TestWindowWithOtherPageSizes(t *testing.T) {
	offset, limit := pagination.Window(3, 10)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 50, limit)

	offset, limit = pagination.Window(8, 10)
	assert.Equal(t, 50, offset)
	assert.Equal(t, 50, limit)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Offset(1, 15))
	assert.Equal(t, 15, pagination.Offset(2, 15))
	assert.Equal(t, 135, pagination.Offset(10, 15))
}

func TestLastPage(t *testing.T) {
	cases := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 15, 1},
		{1, 15, 1},
		{15, 15, 1},
		{16, 15, 2},
		{75, 15, 5},
		{76, 15, 6},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, pagination.LastPage(tc.total, tc.perPage),
			"total=%d perPage=%d", tc.total, tc.perPage)
	}
}
