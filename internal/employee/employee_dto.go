package employee

import (
	"mime/multipart"
	"time"
)

const dateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	FullName      string                  `form:"fullName" binding:"required"`
	Email         string                  `form:"email" binding:"required,email"`
	Phone         string                  `form:"phone" binding:"required,max=32"`
	DOB           string                  `form:"dob" binding:"required,datetime=2006-01-02"`
	Gender        string                  `form:"gender" binding:"required,oneof=Male Female Other"`
	Skills        []string                `form:"skills" binding:"required,min=1,dive,required"`
	Department    string                  `form:"department" binding:"required"`
	Address       string                  `form:"address" binding:"required"`
	IsActive      *bool                   `form:"isActive"`
	Resume        *multipart.FileHeader   `form:"resume" binding:"required"`
	ProfileImage  *multipart.FileHeader   `form:"profileImage" binding:"required"`
	GalleryImages []*multipart.FileHeader `form:"galleryImages"`
}

// UpdateEmployeeRequest carries only what the caller supplied: nil scalars
// and missing uploads leave the stored values unchanged.
// ExistingGalleryImages is the retained subset of the current gallery.
type UpdateEmployeeRequest struct {
	FullName              *string                 `form:"fullName" binding:"omitnil,min=1"`
	Email                 *string                 `form:"email" binding:"omitnil,email"`
	Phone                 *string                 `form:"phone" binding:"omitnil,min=1,max=32"`
	DOB                   *string                 `form:"dob" binding:"omitnil,datetime=2006-01-02"`
	Gender                *string                 `form:"gender" binding:"omitnil,oneof=Male Female Other"`
	Skills                []string                `form:"skills" binding:"omitempty,dive,required"`
	Department            *string                 `form:"department" binding:"omitnil,min=1"`
	Address               *string                 `form:"address" binding:"omitnil,min=1"`
	IsActive              *bool                   `form:"isActive"`
	Resume                *multipart.FileHeader   `form:"resume"`
	ProfileImage          *multipart.FileHeader   `form:"profileImage"`
	GalleryImages         []*multipart.FileHeader `form:"galleryImages"`
	ExistingGalleryImages []string                `form:"existingGalleryImages"`
}

type EmployeeResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	DOB           string    `json:"dob"`
	Gender        string    `json:"gender"`
	Skills        []string  `json:"skills"`
	Department    string    `json:"department"`
	Address       string    `json:"address"`
	IsActive      bool      `json:"isActive"`
	Resume        string    `json:"resume"`
	ProfileImage  string    `json:"profileImage"`
	GalleryImages []string  `json:"galleryImages"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
