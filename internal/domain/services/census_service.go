package services

import (
	"context"
	"fmt"

	"census-otp-service/internal/domain/models"

	"gorm.io/gorm"
)

// CensusForm is a validated census submission
type CensusForm struct {
	Name           string
	Age            int
	Gender         string
	Address        string
	HouseholdSize  int
	AdditionalInfo string
}

// CensusData is everything filed by one account
type CensusData struct {
	UserID       uint                      `json:"user_id"`
	MobileNumber string                    `json:"mobile_number"`
	Name         string                    `json:"name"`
	Submissions  []models.CensusSubmission `json:"submissions"`
}

// InterfaceCensusService defines census intake
type InterfaceCensusService interface {
	SubmitCensus(ctx context.Context, accountID uint, form CensusForm) (*models.CensusSubmission, error)
	GetCensusData(ctx context.Context, accountID uint) (*CensusData, error)
}

// CensusService persists census forms against accounts
type CensusService struct {
	DB *gorm.DB
}

// NewCensusService creates a census service
func NewCensusService(db *gorm.DB) *CensusService {
	return &CensusService{DB: db}
}

// SubmitCensus stores form for accountID; unknown accounts yield ErrAccountNotFound
func (s *CensusService) SubmitCensus(ctx context.Context, accountID uint, form CensusForm) (*models.CensusSubmission, error) {
	submission := &models.CensusSubmission{
		AccountID:      accountID,
		Name:           form.Name,
		Age:            form.Age,
		Gender:         form.Gender,
		Address:        form.Address,
		HouseholdSize:  form.HouseholdSize,
		AdditionalInfo: form.AdditionalInfo,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findAccount(tx, "id = ?", accountID); err != nil {
			return err
		}
		if err := tx.Create(submission).Error; err != nil {
			return fmt.Errorf("%w: create census submission: %v", ErrPersistence, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return submission, nil
}

// GetCensusData returns the account with its submissions, newest first
func (s *CensusService) GetCensusData(ctx context.Context, accountID uint) (*CensusData, error) {
	db := s.DB.WithContext(ctx)

	account, err := findAccount(db, "id = ?", accountID)
	if err != nil {
		return nil, err
	}

	submissions := make([]models.CensusSubmission, 0)
	if err := db.Where("account_id = ?", accountID).Order("created_at DESC, id DESC").Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("%w: list census submissions: %v", ErrPersistence, err)
	}

	return &CensusData{
		UserID:       account.ID,
		MobileNumber: account.MobileNumber,
		Name:         account.Name,
		Submissions:  submissions,
	}, nil
}
