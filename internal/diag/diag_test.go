package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestList_HasErrors(t *testing.T) {
	var l List
	l.Warnf(0, "gap between %d and %d", 1, 3)
	assert.False(t, l.HasErrors())
	l.Errorf(4, "duplicate %s", "1.1")
	assert.True(t, l.HasErrors())
	assert.Len(t, l.Errors(), 1)
	assert.Len(t, l.Warnings(), 1)
}

func TestList_Append(t *testing.T) {
	var a, b List
	a.Warnf(0, "a")
	b.Errorf(0, "b")
	var all List
	all.Append(a, b)
	assert.Equal(t, []string{"a", "b"}, all.Messages())
}

func TestList_RenderErrorsFirst(t *testing.T) {
	var l List
	l.Warnf(0, "minor gap")
	l.Errorf(12, "duplicate cycle 1.1")
	var buf bytes.Buffer
	l.Render(&buf)
	assert.Equal(t, "ERROR: line 12: duplicate cycle 1.1\nWARNING: minor gap\n", buf.String())
}
