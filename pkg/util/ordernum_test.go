package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderNumber(t *testing.T) {
	number := GenerateOrderNumber()

	assert.True(t, strings.HasPrefix(number, "ORD-"))

	parts := strings.Split(number, "-")
	assert.Len(t, parts, 3)
	assert.Len(t, parts[1], 14) // timestamp
	assert.Len(t, parts[2], 8)  // random suffix
}

func TestGenerateOrderNumber_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber()
		assert.False(t, seen[number], "duplicate order number: %s", number)
		seen[number] = true
	}
}
