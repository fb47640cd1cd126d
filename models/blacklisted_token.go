package models

import "time"

// BlacklistedToken is a token invalidated by logout. Rows are kept until the
// token would have expired on its own.
type BlacklistedToken struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Token     string    `json:"token" gorm:"type:varchar(1024);uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
}
