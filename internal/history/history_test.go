package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	s := New("b0", 0)
	for i := 1; i <= 4; i++ {
		require.True(t, s.Push(fmt.Sprintf("b%d", i)))
	}

	for i := 3; i >= 0; i-- {
		got, ok := s.Undo()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("b%d", i), got)
	}

	got, ok := s.Undo()
	assert.False(t, ok)
	assert.Equal(t, "b0", got)
	assert.False(t, s.CanUndo())

	for i := 1; i <= 4; i++ {
		got, ok := s.Redo()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("b%d", i), got)
	}
	_, ok = s.Redo()
	assert.False(t, ok)
}

func TestPushSkipsDuplicate(t *testing.T) {
	s := New("a", 0)
	assert.False(t, s.Push("a"))
	assert.True(t, s.Push("ab"))
	assert.False(t, s.Push("ab"))
	assert.Equal(t, 2, s.Len())
}

func TestPushTruncatesRedoBranch(t *testing.T) {
	s := New("a", 0)
	s.Push("ab")
	s.Push("abc")
	s.Undo()
	s.Undo()
	require.True(t, s.CanRedo())

	s.Push("x")
	assert.False(t, s.CanRedo())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "x", s.Current())

	got, _ := s.Undo()
	assert.Equal(t, "a", got)
}

func TestLimitDropsOldest(t *testing.T) {
	s := New("0", 3)
	s.Push("1")
	s.Push("2")
	s.Push("3")
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "3", s.Current())

	s.Undo()
	got, ok := s.Undo()
	require.True(t, ok)
	assert.Equal(t, "1", got)
	assert.False(t, s.CanUndo())
}

func TestReset(t *testing.T) {
	s := New("a", 0)
	s.Push("b")
	s.Reset("z")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "z", s.Current())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}
