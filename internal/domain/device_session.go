package domain

import "time"

// DeviceSession tracks one physical device per user. There is at most one row
// per DeviceUniqueID; login re-uses the row via an upsert on that key.
// RefreshToken holds the encrypted refresh token as hex(iv) || hex(ciphertext).
type DeviceSession struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"index;not null" json:"user_id"`
	DeviceUniqueID  string     `gorm:"size:128;uniqueIndex;not null" json:"device_unique_id"`
	DeviceTokenFCM  string     `gorm:"size:512" json:"device_token_fcm"`
	DeviceModel     string     `gorm:"size:128" json:"device_model"`
	OperatingSystem string     `gorm:"size:64" json:"operating_system"`
	OSVersion       string     `gorm:"size:64" json:"os_version"`
	AppVersion      string     `gorm:"size:64" json:"app_version"`
	IsLogin         bool       `gorm:"not null;default:false" json:"is_login"`
	ForceLogout     bool       `gorm:"not null;default:false" json:"force_logout"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	LastLogout      *time.Time `json:"last_logout,omitempty"`
	RefreshToken    string     `gorm:"size:2048" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TokenPair is the transient result of a successful login or refresh. It is
// returned to the caller and never persisted; only the refresh token's
// ciphertext is stored on the DeviceSession.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
