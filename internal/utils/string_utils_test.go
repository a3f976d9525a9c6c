package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", TruncateString("hello", 10))
	assert.Equal(t, "hel", TruncateString("hello", 3))
	assert.Equal(t, "", TruncateString("hello", 0))
	assert.Equal(t, "", TruncateString("hello", -1))
	// Truncation counts runes, not bytes.
	assert.Equal(t, "你好", TruncateString("你好世界", 2))
}

func TestSplitAndTrim(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, SplitAndTrim("a, b ,c", ","))
	assert.Equal(t, []string{"a"}, SplitAndTrim("a,,  ,", ","))
	assert.Equal(t, []string{}, SplitAndTrim("", ","))
}

func TestStringToSet(t *testing.T) {
	t.Parallel()

	set := StringToSet("gzip, br, gzip", ",")
	assert.Len(t, set, 2)
	_, ok := set["br"]
	assert.True(t, ok)

	assert.Nil(t, StringToSet("", ","))
	assert.Nil(t, StringToSet(" , ", ","))
}
