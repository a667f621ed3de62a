package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceKeepsCodeAndChainsLocation(t *testing.T) {
	inner := New("NoteLogic.StarNote.nil", "error.notfound", nil).Code(http.StatusNotFound)

	outer := Trace("NoteLogic.StarNote", inner)
	assert.Equal(t, http.StatusNotFound, outer.HTTPCode())
	assert.Equal(t, "error.notfound", outer.MessageCode())
	assert.Contains(t, outer.Error(), "NoteLogic.StarNote.NoteLogic.StarNote.nil")
}

func TestTraceWrapsRawError(t *testing.T) {
	raw := stderrors.New("boom")

	ce := Trace("SpaceLogic.JoinSpaceByCode", raw)
	assert.Equal(t, http.StatusInternalServerError, ce.HTTPCode())
	assert.Equal(t, "error.internal", ce.MessageCode())
	assert.True(t, stderrors.Is(ce, raw))
}
