package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a, b := New(), New()
	assert.NotEqual(t, a, b)
	assert.True(t, IsValid(a))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("0b1f6c2e-4a57-4e44-9c9e-2f6f1f0c7a10"))
	assert.False(t, IsValid("inv_5f2b1c"))
	assert.False(t, IsValid("{0b1f6c2e-4a57-4e44-9c9e-2f6f1f0c7a10}"))
	assert.False(t, IsValid(""))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "0b1f6c2e-4a57-4e44-9c9e-2f6f1f0c7a10", Normalize(" 0B1F6C2E-4A57-4E44-9C9E-2F6F1F0C7A10 "))
}
