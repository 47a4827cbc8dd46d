package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAddress(t *testing.T) {
	valid := []string{
		"0x" + strings.Repeat("0", 40),
		"0x" + strings.Repeat("f", 40),
		"0xAbCdEf0123456789aBcDeF0123456789abcdef01",
	}
	for _, addr := range valid {
		assert.True(t, IsValidAddress(addr), addr)
	}

	invalid := []string{
		"",
		"0x",
		"0x123",
		strings.Repeat("a", 42),
		"1x" + strings.Repeat("a", 40),
		"0x" + strings.Repeat("a", 39),
		"0x" + strings.Repeat("a", 41),
		"0x" + strings.Repeat("g", 40),
		"0X" + strings.Repeat("a", 40),
		" 0x" + strings.Repeat("a", 40),
		"0x" + strings.Repeat("a", 40) + " ",
	}
	for _, addr := range invalid {
		assert.False(t, IsValidAddress(addr), addr)
	}
}

func TestIsValidProductID(t *testing.T) {
	assert.True(t, IsValidProductID(1))
	assert.True(t, IsValidProductID(42))

	assert.False(t, IsValidProductID(0))
	assert.False(t, IsValidProductID(-1))
}
