package types

import (
	"testing"

	assert2 "github.com/stretchr/testify/assert"
)

func TestSliceContains(t *testing.T) {
	assert := assert2.New(t)

	assert.True(SliceContains([]string{"a", "b"}, "a"))
	assert.False(SliceContains([]string{"a", "b"}, "c"))
	assert.False(SliceContains(nil, "a"))
}

func TestSliceUnique(t *testing.T) {
	assert := assert2.New(t)

	assert.Equal([]string{"a", "b", "c"}, SliceUnique([]string{"a", "b", "a", "c", "b"}))
	assert.Nil(SliceUnique[string](nil))
}

func TestGetSliceMaxRepetitionNumber(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert := assert2.New(t)
		assert.Equal(0, GetSliceMaxRepetitionNumber[string](nil))
	})

	t.Run("unique", func(t *testing.T) {
		assert := assert2.New(t)
		assert.Equal(0, GetSliceMaxRepetitionNumber([]string{"a", "b", "c"}))
	})

	t.Run("repeated", func(t *testing.T) {
		assert := assert2.New(t)
		assert.Equal(2, GetSliceMaxRepetitionNumber([]string{"a", "b", "a", "a"}))
	})
}

func TestAppendSliceFirstNonEmpty(t *testing.T) {
	assert := assert2.New(t)

	assert.Equal([]string{"x", "b"}, AppendSliceFirstNonEmpty([]string{"x"}, "", "b", "c"))
	assert.Equal([]string{"x"}, AppendSliceFirstNonEmpty([]string{"x"}, "", ""))
}
