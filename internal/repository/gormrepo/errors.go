package gormrepo

import (
	"errors"

	"storefront/internal/repository"

	"gorm.io/gorm"
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &repository.ConstraintError{Details: []string{"_id: duplicate key"}, Err: err}
	case errors.Is(err, gorm.ErrCheckConstraintViolated), errors.Is(err, gorm.ErrInvalidData):
		return &repository.ConstraintError{Details: []string{err.Error()}, Err: err}
	}
	return err
}
