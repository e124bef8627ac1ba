package vercmp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Acidburn0zzz/pkgdepdb/internal/adapters/vercmp"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0", "1.0", 0},
		{"1.0", "1.1", -1},
		{"1.1", "1.0", 1},
		{"1.0-1", "1.0-2", -1},
		{"1:1.0", "2.0", 1},
		{"1.0a", "1.0", -1},
		{"1.0.a", "1.0.1", -1},
		{"1.011", "1.11", 0},
	}
	for _, c := range cases {
		got := vercmp.Compare(c.a, c.b)
		if c.want < 0 {
			assert.Negative(t, got, "Compare(%q, %q)", c.a, c.b)
		} else if c.want > 0 {
			assert.Positive(t, got, "Compare(%q, %q)", c.a, c.b)
		} else {
			assert.Zero(t, got, "Compare(%q, %q)", c.a, c.b)
		}
	}
}

func TestSatisfies(t *testing.T) {
	c := vercmp.New()
	assert.True(t, c.Satisfies("1.5", ">=", "1.0"))
	assert.False(t, c.Satisfies("1.5", "<", "1.0"))
	assert.True(t, c.Satisfies("1.0", "=", "1.0"))
	assert.True(t, c.Satisfies("anything", "", "ignored"))
}
