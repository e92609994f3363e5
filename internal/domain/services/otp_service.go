package services

import (
	"context"
	"errors"
	"fmt"

	"census-otp-service/internal/domain/models"
	Logger "census-otp-service/pkg/logger"
	"census-otp-service/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OTPLength is the number of digits in an issued code.
const OTPLength = 4

// InterfaceOTPService defines the OTP login flow
type InterfaceOTPService interface {
	GenerateOTP() string
	IssueOTP(ctx context.Context, mobileNumber, name string) (*models.Account, error)
	VerifyOTP(ctx context.Context, mobileNumber, otp string) (*models.Account, error)
}

// OTPService issues and consumes one-time codes stored on Account rows
type OTPService struct {
	DB     *gorm.DB
	Sender OTPSender
	intn   func(int) int
}

// NewOTPService creates an OTP service. A nil sender falls back to LogSender.
func NewOTPService(db *gorm.DB, sender OTPSender) *OTPService {
	if sender == nil {
		sender = LogSender{}
	}
	return &OTPService{DB: db, Sender: sender}
}

// 1 GenerateOTP returns OTPLength independent uniform digits. Not
// cryptographically secure and repeats are allowed.
func (s *OTPService) GenerateOTP() string {
	return utils.RandomDigits(OTPLength, s.intn)
}

// 2 IssueOTP creates the account on first use, stores a new code on it and
// hands the code to the sender. Storing and delivering share a transaction,
// so a delivery failure leaves the previous code in place.
func (s *OTPService) IssueOTP(ctx context.Context, mobileNumber, name string) (*models.Account, error) {
	db := s.DB.WithContext(ctx)

	// An insert failure is not fatal: the lookup below decides.
	if err := insertAccountIfAbsent(db, mobileNumber, name); err != nil {
		Logger.Warning("insert account %s failed: %v", mobileNumber, err)
	}

	var account models.Account
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mobile_number = ?", mobileNumber).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("%w: lookup account: %v", ErrPersistence, err)
		}

		code := s.GenerateOTP()
		if err := tx.Model(&account).Update("otp", code).Error; err != nil {
			return fmt.Errorf("%w: assign otp: %v", ErrOTPIssue, err)
		}
		account.OTP = &code

		if err := s.Sender.Send(ctx, &account, code); err != nil {
			return fmt.Errorf("%w: deliver otp: %v", ErrOTPIssue, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// 3 VerifyOTP consumes the pending code when both mobile number and code
// match exactly. The clear is conditional on the code still being present,
// so two concurrent logins with one code cannot both succeed.
func (s *OTPService) VerifyOTP(ctx context.Context, mobileNumber, otp string) (*models.Account, error) {
	var account models.Account
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mobile_number = ? AND otp = ?", mobileNumber, otp).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidOTP
			}
			return fmt.Errorf("%w: lookup account: %v", ErrPersistence, err)
		}

		result := tx.Model(&models.Account{}).
			Where("id = ? AND otp = ?", account.ID, otp).
			Update("otp", nil)
		if result.Error != nil {
			return fmt.Errorf("%w: clear otp: %v", ErrPersistence, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInvalidOTP
		}
		account.OTP = nil
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func insertAccountIfAbsent(db *gorm.DB, mobileNumber, name string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mobile_number"}},
		DoNothing: true,
	}).Create(&models.Account{MobileNumber: mobileNumber, Name: name}).Error
}
