package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListBooksQueryLenientParsing(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{"", 0},
		{"abc", 0},
		{"1.5", 0},
		{"-2", -2},
		{"4611686018427387904", 4611686018427387904},
		{"99999999999999999999999", math.MaxInt},
		{"-99999999999999999999999", math.MinInt},
	}
	for _, c := range cases {
		q := ListBooksQuery{Page: c.raw, PerPage: c.raw}
		assert.Equal(t, c.want, q.PageNumber(), c.raw)
		assert.Equal(t, c.want, q.PageSize(), c.raw)
	}
}
