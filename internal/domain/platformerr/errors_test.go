package platformerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/repofleet/internal/domain/platformerr"
)

func TestKindOf_TaggedError(t *testing.T) {
	err := platformerr.New(platformerr.KindNotFound, "repo %s does not exist", "some-repo")

	assert.Equal(t, platformerr.KindNotFound, platformerr.KindOf(err))
	assert.Contains(t, err.Error(), "some-repo")
	assert.Contains(t, err.Error(), "not found")
}

func TestKindOf_WrappedChain(t *testing.T) {
	cause := errors.New("boom")
	tagged := platformerr.Wrap(platformerr.KindBadCredentials, cause, "token rejected")
	outer := fmt.Errorf("verifying settings: %w", tagged)

	assert.Equal(t, platformerr.KindBadCredentials, platformerr.KindOf(outer))
	assert.True(t, platformerr.IsBadCredentials(outer))
	require.ErrorIs(t, outer, cause)
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, platformerr.KindUnknown, platformerr.KindOf(errors.New("plain")))
	assert.Equal(t, platformerr.KindUnknown, platformerr.KindOf(nil))
	assert.False(t, platformerr.IsNotFound(errors.New("plain")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "already exists", platformerr.KindAlreadyExists.String())
	assert.Equal(t, "invalid url", platformerr.KindInvalidURL.String())
	assert.Equal(t, "internet connection unavailable", platformerr.KindInternetUnavailable.String())
}
