package services

import (
	"context"
	"errors"
	"fmt"

	"census-otp-service/internal/domain/models"

	"gorm.io/gorm"
)

// InterfaceAccountService defines account lookups
type InterfaceAccountService interface {
	GetAccountByID(ctx context.Context, id uint) (*models.Account, error)
	GetAccountByMobile(ctx context.Context, mobileNumber string) (*models.Account, error)
}

// AccountService reads Account rows
type AccountService struct {
	DB *gorm.DB
}

// NewAccountService creates an account service
func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db}
}

// GetAccountByID returns ErrAccountNotFound for unknown ids
func (s *AccountService) GetAccountByID(ctx context.Context, id uint) (*models.Account, error) {
	return findAccount(s.DB.WithContext(ctx), "id = ?", id)
}

// GetAccountByMobile returns ErrAccountNotFound for unknown numbers
func (s *AccountService) GetAccountByMobile(ctx context.Context, mobileNumber string) (*models.Account, error) {
	return findAccount(s.DB.WithContext(ctx), "mobile_number = ?", mobileNumber)
}

func findAccount(db *gorm.DB, query string, arg interface{}) (*models.Account, error) {
	var account models.Account
	if err := db.Where(query, arg).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: find account: %v", ErrPersistence, err)
	}
	return &account, nil
}
