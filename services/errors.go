package services

import (
	"errors"

	"docman/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errServer            = models.ErrorInternalServer{Message: "unable to process request"}
	errDanglingReference = models.ErrorBadRequest{Message: "referenced record does not exist"}
)

// storeError turns a repository failure into the error a handler can send.
// Missing rows, unique violations and dangling references keep their
// meaning; anything else is logged and reported as a server error.
func storeError(log *zap.Logger, op string, err error, notFound, conflict string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != "":
		return models.ErrorNotFound{Message: notFound}
	case errors.Is(err, gorm.ErrDuplicatedKey) && conflict != "":
		return models.ErrorConflict{Message: conflict}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errDanglingReference
	}

	log.Error("persistence failure", zap.String("op", op), zap.Error(err))
	return errServer
}
