package medcrawl_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/medcrawl"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := medcrawl.Errorf(medcrawl.ENOTFOUND, "source %q not found", "test")

	assert.Equal(t, medcrawl.ENOTFOUND, medcrawl.ErrorCode(err))
	assert.Equal(t, "source \"test\" not found", medcrawl.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, medcrawl.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, medcrawl.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("crawl: %w", medcrawl.Errorf(medcrawl.EBLOCKED, "site likely blocking requests"))

	assert.Equal(t, medcrawl.EBLOCKED, medcrawl.ErrorCode(err))
	assert.Equal(t, "site likely blocking requests", medcrawl.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("boom")

	assert.Equal(t, medcrawl.EINTERNAL, medcrawl.ErrorCode(err))
	assert.Equal(t, "Internal error.", medcrawl.ErrorMessage(err))
}
