package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Author struct {
	ID          uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	FirstName   string         `gorm:"index;size:50;not null" json:"first_name"`
	LastName    string         `gorm:"index;size:50;not null" json:"last_name"`
	DateOfBirth time.Time      `gorm:"not null" json:"date_of_birth"`
	DateOfDeath *time.Time     `json:"date_of_death,omitempty"`
	Genre       string         `gorm:"index;size:50;not null" json:"genre"`
	Books       []Book         `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate assigns a random identifier to authors created without one.
func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Book struct {
	ID          uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	AuthorID    uuid.UUID      `gorm:"type:char(36);index;not null" json:"author_id"`
	Title       string         `gorm:"size:100;not null" json:"title"`
	Description string         `gorm:"size:500" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
