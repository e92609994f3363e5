package models

// Gender choices accepted by the census form.
const (
	GenderMale      = "Male"
	GenderFemale    = "Female"
	GenderNonBinary = "Non-binary"
)

// GenderChoices lists the accepted census genders in display order.
var GenderChoices = []string{GenderMale, GenderFemale, GenderNonBinary}

// CensusSubmission is one census form filed by an account
type CensusSubmission struct {
	BaseModel
	AccountID      uint   `gorm:"index;not null" json:"user_id"`
	Name           string `gorm:"type:varchar(80);not null" json:"name"`
	Age            int    `json:"age"`
	Gender         string `gorm:"type:varchar(10);not null" json:"gender"`
	Address        string `gorm:"type:varchar(255);not null" json:"address"`
	HouseholdSize  int    `json:"household_size"`
	AdditionalInfo string `gorm:"type:text" json:"additional_info,omitempty"`
}
