package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          string    `gorm:"type:char(36);primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	OwnerID     string    `gorm:"type:char(36);not null" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner        *User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Participants []User `gorm:"many2many:project_participants;" json:"participants,omitempty"`
	Tasks        []Task `gorm:"foreignKey:ProjectID" json:"-"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
