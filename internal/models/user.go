package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName     string         `gorm:"type:varchar(255);not null" json:"fullname"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Skills       []string       `gorm:"serializer:json" json:"skills"`
	GitToken     string         `gorm:"type:varchar(255)" json:"-"`
	RefreshToken *string        `gorm:"type:varchar(512)" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	OwnedTeams    []Team       `gorm:"foreignKey:OwnerID" json:"-"`
	Memberships   []TeamMember `gorm:"foreignKey:UserID" json:"-"`
	AssignedTasks []Task       `gorm:"foreignKey:AssigneeID" json:"-"`
	Todos         []Todo       `gorm:"foreignKey:CreatorID" json:"-"`
}
