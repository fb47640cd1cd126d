package models

import "time"

type Role struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Title     string    `json:"title" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DefaultRoles are seeded in this order so that their ids line up with the
// default role id (1) and admin role id (2).
var DefaultRoles = []string{"Regular", "Admin", "Guest"}
