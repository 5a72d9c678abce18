package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound means no row matched the lookup.
	ErrNotFound = errors.New("store: record not found")
	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("store: unique constraint violated")
	// ErrForeignKey means a foreign key constraint rejected the write or delete.
	ErrForeignKey = errors.New("store: foreign key constraint violated")
)

// MySQL server error numbers and PostgreSQL SQLSTATE codes for constraint violations.
const (
	mysqlDupEntry           = 1062
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedRow    = 1452
	mysqlRowIsReferenced2   = 1217
	mysqlNoReferencedRow2   = 1216
	pgUniqueViolation       = "23505"
	pgForeignKeyViolation   = "23503"
	sqliteUniqueMessage     = "UNIQUE constraint failed"
	sqliteForeignKeyMessage = "FOREIGN KEY constraint failed"
)

// translate maps gorm and driver errors onto the package sentinels. Errors that are
// not constraint related are wrapped so the original is kept for logging.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) || errors.Is(err, ErrForeignKey) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDupEntry:
			return ErrDuplicate
		case mysqlRowIsReferenced, mysqlNoReferencedRow, mysqlRowIsReferenced2, mysqlNoReferencedRow2:
			return ErrForeignKey
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrForeignKey
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, sqliteUniqueMessage):
		return ErrDuplicate
	case strings.Contains(msg, sqliteForeignKeyMessage):
		return ErrForeignKey
	}
	return fmt.Errorf("store: %w", err)
}
