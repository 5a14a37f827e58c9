package components

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestCountBarCaptionAndWidth(t *testing.T) {
	view := NewCountBar("Progress", 3, 12, 60).View()
	assert.Contains(t, view, "Progress")
	assert.Contains(t, view, "3/12")
	assert.Equal(t, 60, lipgloss.Width(view))
}

func TestCountBarWithoutTotal(t *testing.T) {
	p := NewCountBar("", 0, 0, 20)
	assert.Zero(t, p.fraction())
	assert.Contains(t, p.View(), "0/0")

	over := NewCountBar("", 5, 2, 20)
	assert.Equal(t, 20, lipgloss.Width(over.View()), "overfull bars stay within width")
}
