package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yoockh/jobboard/internal/utils"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation = "23505"
	// malformed uuid literal; no row can carry such an id
	pgInvalidText = "22P02"
)

// translate maps driver errors onto the repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return utils.ErrDuplicate
		case pgInvalidText:
			return utils.ErrNotFound
		}
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ilike builds a literal substring pattern. Backslash is the default LIKE escape.
func ilike(s string) string { return "%" + likeEscaper.Replace(s) + "%" }
