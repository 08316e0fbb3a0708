package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/yoockh/jobboard/internal/utils"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	boom := errors.New("connection reset")
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, utils.ErrNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, utils.ErrDuplicate},
		{"unique violation", &pgconn.PgError{Code: "23505"}, utils.ErrDuplicate},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), utils.ErrDuplicate},
		{"malformed uuid", &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}, utils.ErrNotFound},
		{"other", boom, boom},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translate(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestILikeEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%engineer%", ilike("engineer"))
	assert.Equal(t, `%50\%\_off%`, ilike("50%_off"))
	assert.Equal(t, `%a\\b%`, ilike(`a\b`))
}
