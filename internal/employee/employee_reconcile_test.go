package employee_test

import (
	"testing"

	"employee-directory/internal/employee"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	previous := employee.Attachments{
		Resume:       "uploads/resume-old.pdf",
		ProfileImage: "uploads/profileImage-old.png",
		Gallery:      []string{"a", "b", "c"},
	}

	t.Run("retained subset plus new uploads", func(t *testing.T) {
		plan := employee.Reconcile(previous, employee.DesiredAttachments{
			RetainedGallery: []string{"a", "c"},
			NewGallery:      []string{"d"},
		})

		assert.Equal(t, []string{"a", "c", "d"}, plan.Final.Gallery)
		assert.Equal(t, []string{"b"}, plan.ToDelete)
		assert.Equal(t, previous.Resume, plan.Final.Resume)
		assert.Equal(t, previous.ProfileImage, plan.Final.ProfileImage)
	})

	t.Run("new resume replaces old one", func(t *testing.T) {
		plan := employee.Reconcile(previous, employee.DesiredAttachments{
			Resume:          "uploads/resume-new.pdf",
			RetainedGallery: []string{"a", "b", "c"},
		})

		assert.Equal(t, "uploads/resume-new.pdf", plan.Final.Resume)
		assert.Equal(t, []string{"uploads/resume-old.pdf"}, plan.ToDelete)
		assert.Equal(t, []string{"a", "b", "c"}, plan.Final.Gallery)
	})

	t.Run("both singles replaced keep resume first", func(t *testing.T) {
		plan := employee.Reconcile(previous, employee.DesiredAttachments{
			Resume:          "uploads/resume-new.pdf",
			ProfileImage:    "uploads/profileImage-new.png",
			RetainedGallery: []string{"a", "b", "c"},
		})

		assert.Equal(t, []string{"uploads/resume-old.pdf", "uploads/profileImage-old.png"}, plan.ToDelete)
	})

	t.Run("nothing retained removes whole gallery", func(t *testing.T) {
		plan := employee.Reconcile(previous, employee.DesiredAttachments{})

		assert.Empty(t, plan.Final.Gallery)
		assert.NotNil(t, plan.Final.Gallery)
		assert.Equal(t, []string{"a", "b", "c"}, plan.ToDelete)
	})

	t.Run("unowned retained entries are ignored", func(t *testing.T) {
		plan := employee.Reconcile(previous, employee.DesiredAttachments{
			RetainedGallery: []string{"a", "someone-else.png", "a"},
		})

		assert.Equal(t, []string{"a"}, plan.Final.Gallery)
		assert.Equal(t, []string{"b", "c"}, plan.ToDelete)
	})

	t.Run("no change deletes nothing", func(t *testing.T) {
		plan := employee.Reconcile(previous, employee.DesiredAttachments{
			RetainedGallery: []string{"c", "a", "b"},
		})

		assert.Equal(t, []string{"c", "a", "b"}, plan.Final.Gallery)
		assert.Empty(t, plan.ToDelete)
	})

	t.Run("same reference resubmitted is not deleted", func(t *testing.T) {
		plan := employee.Reconcile(previous, employee.DesiredAttachments{
			Resume:          previous.Resume,
			RetainedGallery: []string{"a", "b", "c"},
		})

		assert.Empty(t, plan.ToDelete)
	})

	t.Run("empty previous gallery", func(t *testing.T) {
		plan := employee.Reconcile(employee.Attachments{Resume: "r", ProfileImage: "p"}, employee.DesiredAttachments{
			NewGallery: []string{"x", "y"},
		})

		assert.Equal(t, []string{"x", "y"}, plan.Final.Gallery)
		assert.Empty(t, plan.ToDelete)
	})
}

func TestAttachments_Refs(t *testing.T) {
	a := employee.Attachments{Resume: "r", Gallery: []string{"g1", "", "g2"}}
	assert.Equal(t, []string{"r", "g1", "g2"}, a.Refs())
	assert.Empty(t, employee.Attachments{}.Refs())
}
