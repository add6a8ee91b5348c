package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("record not found")
)

type GormRepo struct {
	DB *gorm.DB
}
