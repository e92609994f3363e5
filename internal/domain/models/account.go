package models

import "fmt"

// Account represents a user identified by mobile number
type Account struct {
	BaseModel
	MobileNumber string  `gorm:"type:varchar(15);uniqueIndex;not null" json:"mobile_number"`
	Name         string  `gorm:"type:varchar(80);not null;default:''" json:"name"`
	OTP          *string `gorm:"column:otp;type:varchar(6)" json:"-"` // nil when no code is pending

	// Relations
	CensusSubmissions []CensusSubmission `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"census_submissions,omitempty"`
}

// HasPendingOTP reports whether a code was issued and not yet consumed.
func (a *Account) HasPendingOTP() bool {
	return a.OTP != nil && *a.OTP != ""
}

func (a Account) String() string {
	return fmt.Sprintf("Account(mobile_number=%s, name=%s)", a.MobileNumber, a.Name)
}
