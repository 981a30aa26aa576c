package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken   = errors.New("email has already been registered")
	ErrUserNotFound = errors.New("user not found")
)

type GormRepo struct {
	DB *gorm.DB
}
