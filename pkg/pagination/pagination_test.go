package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		name     string
		limit    int
		fallback int
		want     int
	}{
		{"zero uses fallback", 0, 8, 8},
		{"negative uses fallback", -3, 8, 8},
		{"within bounds", 20, 8, 20},
		{"clamped to max", 500, 8, MaxLimit},
		{"missing fallback", 0, 0, DefaultLimit},
		{"oversized fallback", 0, 1000, MaxLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeLimit(tc.limit, tc.fallback))
		})
	}
}

func TestOffsetFor(t *testing.T) {
	assert.Equal(t, 0, OffsetFor(0, 10))
	assert.Equal(t, 0, OffsetFor(1, 10))
	assert.Equal(t, 20, OffsetFor(3, 10))
	assert.Equal(t, 0, OffsetFor(-4, 10))
	assert.Equal(t, math.MaxInt/20*20, OffsetFor(math.MaxInt, 20))
	assert.Equal(t, math.MaxInt/7*7, OffsetFor(math.MaxInt/7+2, 7))
	assert.GreaterOrEqual(t, OffsetFor(math.MaxInt, MaxLimit), 0)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 2, PageCount(11, 10))
	assert.Equal(t, 0, PageCount(5, 0))
}
