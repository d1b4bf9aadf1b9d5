package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	Overview        string         `gorm:"type:text" json:"overview"`
	Objectives      string         `gorm:"type:text" json:"objectives"`
	TechStack       string         `gorm:"type:text" json:"tech_stack"`
	TeamID          uint64         `gorm:"not null" json:"team_id"`
	RepoName        string         `gorm:"type:varchar(255)" json:"repo_name"`
	RepoOwner       string         `gorm:"type:varchar(255)" json:"repo_owner"`
	RepoInitialized bool           `gorm:"not null;default:false" json:"repo_initialized"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Team  Team   `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}
