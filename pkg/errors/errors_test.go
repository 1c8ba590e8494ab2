package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	base := fmt.Errorf("base error")

	wrapped := Wrap(base, "context")
	require.Error(t, wrapped)
	assert.Equal(t, "context: base error", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)

	assert.NoError(t, Wrap(nil, "context"))
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrTargetBaseMissing, "folder %q", "D:\\Shares")
	require.Error(t, wrapped)
	assert.Equal(t, `folder "D:\Shares": target base path does not exist`, wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrTargetBaseMissing)

	assert.NoError(t, Wrapf(nil, "folder %q", "x"))
}
