package domain

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        *string   `gorm:"size:255;uniqueIndex" json:"email,omitempty"`
	MobileNumber string    `gorm:"size:32;uniqueIndex;not null" json:"mobile_number"`
	Name         string    `gorm:"size:255" json:"name"`
	IsDeleted    bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
