package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOfWrappedError(t *testing.T) {
	base := errors.New("font file truncated")
	err := WrapError(base, EIO, "cannot read %s", "a.ttf")
	assert.Equal(t, EIO, Code(err))
	assert.Equal(t, "cannot read a.ttf", UserMessage(err))
	assert.True(t, errors.Is(err, base))
	assert.Contains(t, err.Error(), "font file truncated")
	//
	outer := fmt.Errorf("rendering: %w", err)
	assert.Equal(t, EIO, Code(outer), "code must survive further wrapping")
}

func TestCodeDefaults(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
	assert.Equal(t, "internal error", UserMessage(errors.New("plain")))
}

func TestErrorWithNilCause(t *testing.T) {
	err := WrapError(nil, EMISSING, "no glyph")
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, "not found", errors.Unwrap(err).Error())
	err = Error(EINVALID, "bad attribute %q", "tate")
	assert.Equal(t, `bad attribute "tate"`, UserMessage(err))
	assert.Equal(t, "undefined error", errorText(999))
}

func TestExitStatus(t *testing.T) {
	assert.Equal(t, 0, ExitStatus(nil))
	assert.Equal(t, 2, ExitStatus(Error(EINVALID, "x")))
	assert.Equal(t, 3, ExitStatus(fmt.Errorf("wrapped: %w", Error(EMISSING, "x"))))
	assert.Equal(t, 4, ExitStatus(WrapError(errors.New("disk"), EIO, "x")))
	assert.Equal(t, 1, ExitStatus(errors.New("plain")))
}
