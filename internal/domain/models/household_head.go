package models

import "time"

// HouseholdHead is the head of a family unit recorded by the census
type HouseholdHead struct {
	BaseModel
	Name            string    `gorm:"type:varchar(80);not null" json:"name"`
	DateOfBirth     time.Time `gorm:"not null" json:"date_of_birth"`
	Region          string    `gorm:"type:varchar(25);not null" json:"region"`
	District        string    `gorm:"type:varchar(25);not null" json:"district"`
	Town            string    `gorm:"type:varchar(25);not null" json:"town"`
	Village         string    `gorm:"type:varchar(25)" json:"village,omitempty"`
	Education       string    `gorm:"type:varchar(25)" json:"education,omitempty"`
	Occupation      string    `gorm:"type:varchar(25)" json:"occupation,omitempty"`
	Address         string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	VidhanSabhaCode string    `gorm:"type:varchar(20)" json:"vidhan_sabha_code,omitempty"` // state assembly constituency
	LokSabhaCode    string    `gorm:"type:varchar(20)" json:"lok_sabha_code,omitempty"`    // parliamentary constituency

	// Relations
	Members []HouseholdMember `gorm:"foreignKey:HeadID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
}
