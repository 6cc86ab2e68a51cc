//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"hall-booking/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, kind: infra.KindNotFound},
		{name: "exclusion violation", err: &pgconn.PgError{Code: "23P01"}, kind: infra.KindConflict},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, kind: infra.KindConflict},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, kind: infra.KindForeignKeyViolated},
		{name: "other pg error", err: &pgconn.PgError{Code: "57014"}, kind: infra.KindDBFailure},
		{name: "plain error", err: errors.New("connection reset"), kind: infra.KindDBFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := infra.WrapRepoErr("query failed", tc.err)

			assert.True(t, infra.IsKind(wrapped, tc.kind))
			assert.ErrorIs(t, wrapped, tc.err, "original driver error must stay reachable")
			assert.Contains(t, wrapped.Error(), "query failed")
		})
	}

	t.Run("kind survives further wrapping", func(t *testing.T) {
		wrapped := infra.WrapRepoErr("find booking", pgx.ErrNoRows)
		outer := errors.Join(errors.New("outer"), wrapped)

		assert.True(t, infra.IsKind(outer, infra.KindNotFound))
	})

	t.Run("IsKind on an unclassified error", func(t *testing.T) {
		assert.False(t, infra.IsKind(errors.New("plain"), infra.KindNotFound))
	})
}
