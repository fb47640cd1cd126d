package models

import (
	"time"
)

type User struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	Username  string     `json:"username" gorm:"uniqueIndex;not null"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Firstname string     `json:"firstname" gorm:"not null"`
	Lastname  string     `json:"lastname" gorm:"not null"`
	RoleID    uint       `json:"roleId" gorm:"not null;default:1;index"`
	Role      *Role      `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Documents []Document `json:"documents,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// UserProfile is the reduced view of a user returned to non-admin callers.
type UserProfile struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Joined    time.Time `json:"joined"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		Username:  u.Username,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Joined:    u.CreatedAt,
	}
}
