package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("reply: %w", Wrap(CodeFAQ, "failed to load candidates", cause))

	require.Equal(t, CodeFAQ, CodeOf(err))
	require.True(t, IsCode(err, CodeFAQ))
	require.False(t, IsCode(err, CodeNotFound))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "failed to load candidates", MessageOf(err))
	require.Equal(t, "", CodeOf(cause))
	require.Equal(t, "connection refused", MessageOf(cause))
}

func TestHelpers(t *testing.T) {
	require.True(t, IsCode(Invalid("bad"), CodeInvalidInput))
	require.True(t, IsCode(NotFound("gone"), CodeNotFound))
	require.Equal(t, "gone", NotFound("gone").Error())
}
