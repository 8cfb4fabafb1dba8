package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campus-track/attendance-service/internal/repositories"
)

// handleDBError maps gorm errors onto the repository sentinels so services
// never import gorm error values.
func handleDBError(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return repositories.ErrForeignKeyViolated
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
