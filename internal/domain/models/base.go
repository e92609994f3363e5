package models

import "time"

// BaseModel carries the primary key and timestamps shared by every table.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All returns every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&CensusSubmission{},
		&HouseholdHead{},
		&HouseholdMember{},
	}
}
