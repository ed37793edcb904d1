package models

import "time"

// Profile is the persisted business profile. Goals are stored as a JSON
// array to stay portable between postgres and the sqlite test databases.
type Profile struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Email           string    `json:"email" gorm:"type:varchar(255)"`
	OwnerName       string    `json:"owner_name" gorm:"type:varchar(255);not null"`
	BusinessName    string    `json:"business_name" gorm:"type:varchar(255);not null"`
	BusinessType    string    `json:"business_type" gorm:"type:varchar(255)"`
	Country         string    `json:"country" gorm:"type:varchar(128)"`
	Currency        string    `json:"currency" gorm:"type:varchar(16)"`
	RevenueRange    string    `json:"revenue_range" gorm:"type:varchar(128)"`
	TeamSize        string    `json:"team_size" gorm:"type:varchar(64)"`
	PrimaryStrength string    `json:"primary_strength" gorm:"type:varchar(255)"`
	GoalsJSON       string    `json:"-" gorm:"column:goals;type:text"`
	CreatedAt       time.Time `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"not null;autoUpdateTime"`
}
