package sliceedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplace(t *testing.T) {
	buf := NewBufferString("the quick fox")
	buf.Replace(4, 9, "slow")
	assert.Equal(t, "the slow fox", buf.String())
}

func TestDelete(t *testing.T) {
	buf := NewBufferString("the quick fox")
	buf.Delete(0, 4)
	assert.Equal(t, "quick fox", buf.String())
}

func TestMultipleEdits(t *testing.T) {
	// Offsets always address the original data, not prior edits.
	buf := NewBufferString("a b c")
	buf.Replace(0, 1, "alpha")
	buf.Replace(4, 5, "gamma")
	assert.Equal(t, "alpha b gamma", buf.String())
}

func TestReplaceAllString(t *testing.T) {
	buf := NewBufferString("a.b.c")
	buf.ReplaceAllString(".", "-")
	assert.Equal(t, "a-b-c", buf.String())
}

func TestFindAll(t *testing.T) {
	assert.Equal(t, []int{1, 4}, FindAll([]byte("abcabc"), "bc"))
	assert.Equal(t, []int{0, 2, 4}, FindAll([]byte("ababab"), "ab"))
	assert.Empty(t, FindAll([]byte("abc"), "zz"))
	assert.Empty(t, FindAll([]byte("abc"), ""))
}
