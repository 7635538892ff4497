package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	t.Run("defaults when nil", func(t *testing.T) {
		offset, limit := GetPaginationParams(nil, nil)
		assert.Equal(t, 0, offset)
		assert.Equal(t, 20, limit)
	})

	t.Run("explicit values", func(t *testing.T) {
		offset, limit := GetPaginationParams(intPtr(40), intPtr(50))
		assert.Equal(t, 40, offset)
		assert.Equal(t, 50, limit)
	})

	t.Run("limit clamped to maximum", func(t *testing.T) {
		_, limit := GetPaginationParams(nil, intPtr(500))
		assert.Equal(t, 100, limit)
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		offset, limit := GetPaginationParams(intPtr(-5), intPtr(0))
		assert.Equal(t, 0, offset)
		assert.Equal(t, 20, limit)
	})
}
