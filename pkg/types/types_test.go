package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailedWrapsCause(t *testing.T) {
	cause := errors.New("unexpected EOF")
	var result LoadResult = Failed{Path: "a/b.png", Err: cause}

	f, ok := result.(Failed)
	assert.True(t, ok)
	assert.Equal(t, "a/b.png", f.Source())
	assert.Equal(t, "a/b.png: unexpected EOF", f.Error())
	assert.ErrorIs(t, f, cause)
}

func TestDecodedSource(t *testing.T) {
	var result LoadResult = Decoded{Path: "x.jpg"}
	assert.Equal(t, "x.jpg", result.Source())
}
