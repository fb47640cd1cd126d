package models

import (
	"time"
)

type DocumentAccess string

const (
	AccessPublic  DocumentAccess = "public"
	AccessPrivate DocumentAccess = "private"
)

func (a DocumentAccess) Valid() bool {
	return a == AccessPublic || a == AccessPrivate
}

type Document struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Title     string         `json:"title" gorm:"uniqueIndex;not null"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Access    DocumentAccess `json:"access" gorm:"not null;default:'public'"`
	OwnerID   uint           `json:"ownerId" gorm:"not null;index"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
