package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Employee struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	FullName      string
	Email         string `gorm:"uniqueIndex:uq_employees_email"`
	Phone         string
	DOB           time.Time `gorm:"column:dob;type:date"`
	Gender        string
	Skills        pq.StringArray `gorm:"type:text[]"`
	Department    string
	Address       string
	IsActive      bool
	Resume        string
	ProfileImage  string
	GalleryImages pq.StringArray `gorm:"type:text[]"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Employee) TableName() string { return "employees" }

// Attachments returns the references the record currently owns.
func (e Employee) Attachments() Attachments {
	return Attachments{
		Resume:       e.Resume,
		ProfileImage: e.ProfileImage,
		Gallery:      append([]string(nil), e.GalleryImages...),
	}
}

func (e *Employee) setAttachments(a Attachments) {
	e.Resume = a.Resume
	e.ProfileImage = a.ProfileImage
	e.GalleryImages = pq.StringArray(append([]string{}, a.Gallery...))
}
