package models

import "time"

// HouseholdMember belongs to exactly one HouseholdHead
type HouseholdMember struct {
	BaseModel
	HeadID         uint       `gorm:"index;not null" json:"head_id"`
	Name           string     `gorm:"type:varchar(80);not null" json:"name"`
	Age            *int       `json:"age,omitempty"`
	Gender         string     `gorm:"type:varchar(10)" json:"gender,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	RelationToHead string     `gorm:"type:varchar(20)" json:"relation_to_head,omitempty"`
	Education      string     `gorm:"type:varchar(20)" json:"education,omitempty"`
	Occupation     string     `gorm:"type:varchar(20)" json:"occupation,omitempty"`
	CurrentAddress string     `gorm:"type:varchar(200)" json:"current_address,omitempty"`

	Head *HouseholdHead `gorm:"foreignKey:HeadID;constraint:OnDelete:CASCADE" json:"-"`
}

// CalculateAge returns completed years between DateOfBirth and now, or nil
// when the birth date is unknown.
func (m *HouseholdMember) CalculateAge(now time.Time) *int {
	if m.DateOfBirth == nil {
		return nil
	}
	dob := *m.DateOfBirth
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return &years
}
