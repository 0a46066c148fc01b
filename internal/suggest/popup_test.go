package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopupNavigationWraps(t *testing.T) {
	var p Popup
	assert.False(t, p.Active())
	assert.Nil(t, p.SelectedItem())

	p.Show(named("a", "b", "c"))
	require.True(t, p.Active())
	assert.Equal(t, "a", p.SelectedItem().Label)

	p.SelectPrev()
	assert.Equal(t, "c", p.SelectedItem().Label)

	p.SelectNext()
	p.SelectNext()
	assert.Equal(t, "b", p.SelectedItem().Label)

	p.Close()
	assert.False(t, p.Active())
	assert.Equal(t, 0, p.Selected)
}

func TestPopupNavigationOnEmptyIsNoop(t *testing.T) {
	var p Popup
	p.SelectNext()
	p.SelectPrev()
	assert.Equal(t, 0, p.Selected)
}
