package employee

import (
	"errors"
	"fmt"
	"testing"

	employeeerrors "employee-directory/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMapRepositoryError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), employeeerrors.ErrEmployeeNotFound},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, employeeerrors.ErrEmployeeAlreadyExists},
		{"pg unique email", &pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_email"}, employeeerrors.ErrEmployeeAlreadyExists},
		{"message fallback", errors.New(`ERROR: duplicate key value violates unique constraint "uq_employees_email"`), employeeerrors.ErrEmployeeAlreadyExists},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, mapRepositoryError(tc.in))
		})
	}

	other := &pgconn.PgError{Code: "23505", ConstraintName: "employees_pkey"}
	assert.Same(t, other, mapRepositoryError(other))
}

func TestNormalizeSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, normalizeSkills([]string{"Go, SQL", " Docker ", "Go", ""}))
	assert.Empty(t, normalizeSkills([]string{" ", ","}))
}

func TestNewProfilePatch(t *testing.T) {
	email := " New@Example.COM "
	bad := "10/12/1990"

	p, err := newProfilePatch(UpdateEmployeeRequest{Email: &email})
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", *p.email)
	assert.Nil(t, p.fullName)

	_, err = newProfilePatch(UpdateEmployeeRequest{DOB: &bad})
	assert.ErrorIs(t, err, employeeerrors.ErrInvalidDOB)

	_, err = newProfilePatch(UpdateEmployeeRequest{Skills: []string{" "}})
	assert.ErrorIs(t, err, employeeerrors.ErrSkillsRequired)
}
