package berita_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/berita"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := berita.Errorf(berita.ENOTFOUND, "article %q not found", "https://detik.com/x")

	assert.Equal(t, berita.ENOTFOUND, berita.ErrorCode(err))
	assert.Equal(t, "article \"https://detik.com/x\" not found", berita.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("scrape: %w", berita.Errorf(berita.EUNAVAILABLE, "browser unavailable"))

	assert.Equal(t, berita.EUNAVAILABLE, berita.ErrorCode(err))
	assert.Equal(t, "browser unavailable", berita.ErrorMessage(err))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, berita.EINTERNAL, berita.ErrorCode(err))
	assert.Equal(t, "Internal error.", berita.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, berita.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, berita.ErrorMessage(nil))
}
