package types

import (
	"testing"

	assert2 "github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	assert := assert2.New(t)

	assert.Equal("", ToString(nil))
	assert.Equal("abc", ToString("abc"))
	assert.Equal("42", ToString(42))
	assert.Equal("3.14", ToString(3.14))
	assert.Equal("10", ToString(float64(10)))
	assert.Equal("true", ToString(true))
	assert.Equal("7", ToString(uint64(7)))
}

func TestRemovePointer(t *testing.T) {
	assert := assert2.New(t)

	v := 5
	assert.Equal(5, RemovePointer(&v))
	assert.Equal(0, RemovePointer[int](nil))
}
