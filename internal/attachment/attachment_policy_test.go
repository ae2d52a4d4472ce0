package attachment_test

import (
	"testing"

	"employee-directory/internal/attachment"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_Accepts(t *testing.T) {
	policies := attachment.DefaultPolicies()
	resume := policies[attachment.CategoryResume]
	image := policies[attachment.CategoryGalleryImage]

	assert.True(t, resume.Accepts("application/pdf"))
	assert.True(t, resume.Accepts("Application/PDF; charset=binary"))
	assert.False(t, resume.Accepts("image/png"))

	assert.True(t, image.Accepts("image/png"))
	assert.True(t, image.Accepts("image/jpeg"))
	assert.False(t, image.Accepts("text/plain; charset=utf-8"))
	assert.False(t, image.Accepts("application/pdf"))
}

func TestPolicies_WithLimits(t *testing.T) {
	base := attachment.DefaultPolicies()

	got := base.WithLimits(1<<20, 4<<20, 3)

	assert.Equal(t, int64(1<<20), got[attachment.CategoryResume].MaxBytes)
	assert.Equal(t, int64(4<<20), got[attachment.CategoryProfileImage].MaxBytes)
	assert.Equal(t, int64(4<<20), got[attachment.CategoryGalleryImage].MaxBytes)
	assert.Equal(t, 3, got[attachment.CategoryGalleryImage].MaxFiles)
	assert.Equal(t, 1, got[attachment.CategoryResume].MaxFiles)
	// base untouched
	assert.Equal(t, int64(2<<20), base[attachment.CategoryResume].MaxBytes)
}
