//go:build unit

package infra_test

import (
	"testing"

	"booking-checkout/internal/infra"
	"booking-checkout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	cause := errs.New("connection reset")

	t.Run("defaults to storage failure", func(t *testing.T) {
		err := infra.WrapRepoErr("failed to read draft", cause)
		assert.True(t, infra.IsKind(err, infra.KindStorageFailure))
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "STORAGE_FAILURE: failed to read draft: failed to read draft: connection reset", err.Error())
	})

	t.Run("explicit kind", func(t *testing.T) {
		err := infra.WrapRepoErr("draft not found", nil, infra.KindNotFound)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.Equal(t, infra.KindNotFound, infra.KindOf(err))
		assert.Equal(t, "NOT_FOUND: draft not found", err.Error())
	})

	t.Run("survives further wrapping", func(t *testing.T) {
		err := errs.Wrap(infra.WrapRepoErr("timed out", cause, infra.KindTimeout), "create booking")
		assert.True(t, infra.IsKind(err, infra.KindTimeout))
		assert.False(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("unrelated error has no kind", func(t *testing.T) {
		assert.Equal(t, infra.RepositoryErrorKind(""), infra.KindOf(cause))
	})
}
