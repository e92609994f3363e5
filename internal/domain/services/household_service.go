package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"census-otp-service/internal/domain/models"

	"gorm.io/gorm"
)

// InterfaceHouseholdService defines household head/member management
type InterfaceHouseholdService interface {
	CreateHousehold(ctx context.Context, head *models.HouseholdHead) error
	GetHousehold(ctx context.Context, id uint) (*models.HouseholdHead, error)
	DeleteHousehold(ctx context.Context, id uint) error
	AddMember(ctx context.Context, headID uint, member *models.HouseholdMember) error
	GetMembers(ctx context.Context, headID uint) ([]models.HouseholdMember, error)
}

// HouseholdService manages HouseholdHead rows and their members
type HouseholdService struct {
	DB  *gorm.DB
	now func() time.Time
}

// NewHouseholdService creates a household service
func NewHouseholdService(db *gorm.DB) *HouseholdService {
	return &HouseholdService{DB: db, now: time.Now}
}

// 1 CreateHousehold inserts head together with head.Members
func (s *HouseholdService) CreateHousehold(ctx context.Context, head *models.HouseholdHead) error {
	for i := range head.Members {
		s.fillAge(&head.Members[i])
	}
	if err := s.DB.WithContext(ctx).Create(head).Error; err != nil {
		return fmt.Errorf("%w: create household: %v", ErrPersistence, err)
	}
	return nil
}

// 2 GetHousehold loads a head with its members ordered by id
func (s *HouseholdService) GetHousehold(ctx context.Context, id uint) (*models.HouseholdHead, error) {
	var head models.HouseholdHead
	err := s.DB.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&head, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseholdNotFound
		}
		return nil, fmt.Errorf("%w: get household: %v", ErrPersistence, err)
	}
	return &head, nil
}

// 3 DeleteHousehold removes a head and all of its members
func (s *HouseholdService) DeleteHousehold(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := headExists(tx, id); err != nil {
			return err
		}
		// Explicit so the cascade holds even where FK enforcement is off.
		if err := tx.Where("head_id = ?", id).Delete(&models.HouseholdMember{}).Error; err != nil {
			return fmt.Errorf("%w: delete members: %v", ErrPersistence, err)
		}
		if err := tx.Delete(&models.HouseholdHead{}, id).Error; err != nil {
			return fmt.Errorf("%w: delete household: %v", ErrPersistence, err)
		}
		return nil
	})
}

// 4 AddMember attaches member to an existing head
func (s *HouseholdService) AddMember(ctx context.Context, headID uint, member *models.HouseholdMember) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := headExists(tx, headID); err != nil {
			return err
		}
		member.ID = 0
		member.HeadID = headID
		s.fillAge(member)
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: create member: %v", ErrPersistence, err)
		}
		return nil
	})
}

// 5 GetMembers lists the members of an existing head
func (s *HouseholdService) GetMembers(ctx context.Context, headID uint) ([]models.HouseholdMember, error) {
	db := s.DB.WithContext(ctx)
	if err := headExists(db, headID); err != nil {
		return nil, err
	}

	members := make([]models.HouseholdMember, 0)
	if err := db.Where("head_id = ?", headID).Order("id ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("%w: list members: %v", ErrPersistence, err)
	}
	return members, nil
}

// fillAge derives Age from DateOfBirth when the caller left it empty.
func (s *HouseholdService) fillAge(member *models.HouseholdMember) {
	if member.Age == nil {
		member.Age = member.CalculateAge(s.now())
	}
}

func headExists(db *gorm.DB, id uint) error {
	var count int64
	if err := db.Model(&models.HouseholdHead{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: find household: %v", ErrPersistence, err)
	}
	if count == 0 {
		return ErrHouseholdNotFound
	}
	return nil
}
