package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	UID          uuid.UUID `gorm:"type:uuid;primaryKey"  json:"uid"`
	Username     string    `gorm:"not null"              json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"  json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `gorm:"not null;default:user" json:"role"`
	IsVerified   bool      `gorm:"default:false"         json:"is_verified"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Book struct {
	UID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"uid"`
	Title         string    `gorm:"not null"             json:"title"`
	Author        string    `gorm:"not null"             json:"author"`
	Publisher     string    `json:"publisher"`
	PublishedDate time.Time `json:"published_date"`
	PageCount     int       `json:"page_count"`
	Language      string    `json:"language"`
	UserUID       uuid.UUID `gorm:"type:uuid;index"      json:"user_uid"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Reviews []Review `gorm:"foreignKey:BookUID"   json:"reviews,omitempty"`
	Tags    []Tag    `gorm:"many2many:book_tags"  json:"tags,omitempty"`
}

type Review struct {
	UID        uuid.UUID `gorm:"type:uuid;primaryKey"       json:"uid"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText string    `gorm:"not null"                   json:"review_text"`
	BookUID    uuid.UUID `gorm:"type:uuid;index;not null"   json:"book_uid"`
	UserUID    uuid.UUID `gorm:"type:uuid;index;not null"   json:"user_uid"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Tag struct {
	UID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"uid"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
