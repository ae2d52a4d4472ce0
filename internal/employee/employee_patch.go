package employee

import (
	"strings"
	"time"

	employeeerrors "employee-directory/internal/employee/errors"
	"employee-directory/internal/shared/apperror"

	"github.com/lib/pq"
)

// profilePatch holds the validated scalar changes of an update.
type profilePatch struct {
	fullName   *string
	email      *string
	phone      *string
	dob        *time.Time
	gender     *string
	skills     []string
	department *string
	address    *string
	isActive   *bool
}

func newProfilePatch(req UpdateEmployeeRequest) (profilePatch, error) {
	var p profilePatch
	var err error

	if p.fullName, err = trimmed(req.FullName, "Full Name"); err != nil {
		return p, err
	}
	if p.phone, err = trimmed(req.Phone, "Phone"); err != nil {
		return p, err
	}
	if p.department, err = trimmed(req.Department, "Department"); err != nil {
		return p, err
	}
	if p.address, err = trimmed(req.Address, "Address"); err != nil {
		return p, err
	}
	if p.gender, err = trimmed(req.Gender, "Gender"); err != nil {
		return p, err
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return p, apperror.RequiredField("Email")
		}
		p.email = &email
	}
	if req.DOB != nil {
		dob, err := time.Parse(dateLayout, strings.TrimSpace(*req.DOB))
		if err != nil {
			return p, employeeerrors.ErrInvalidDOB
		}
		p.dob = &dob
	}
	if req.Skills != nil {
		p.skills = normalizeSkills(req.Skills)
		if len(p.skills) == 0 {
			return p, employeeerrors.ErrSkillsRequired
		}
	}
	p.isActive = req.IsActive
	return p, nil
}

func (p profilePatch) applyTo(e *Employee) {
	if p.fullName != nil {
		e.FullName = *p.fullName
	}
	if p.email != nil {
		e.Email = *p.email
	}
	if p.phone != nil {
		e.Phone = *p.phone
	}
	if p.dob != nil {
		e.DOB = *p.dob
	}
	if p.gender != nil {
		e.Gender = *p.gender
	}
	if p.skills != nil {
		e.Skills = pq.StringArray(p.skills)
	}
	if p.department != nil {
		e.Department = *p.department
	}
	if p.address != nil {
		e.Address = *p.address
	}
	if p.isActive != nil {
		e.IsActive = *p.isActive
	}
}

func trimmed(v *string, field string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	out := strings.TrimSpace(*v)
	if out == "" {
		return nil, apperror.RequiredField(field)
	}
	return &out, nil
}

// normalizeSkills accepts repeated values as well as a single
// comma-separated value. Order of first occurrence is kept.
func normalizeSkills(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		for _, part := range strings.Split(entry, ",") {
			skill := strings.TrimSpace(part)
			if skill == "" {
				continue
			}
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			out = append(out, skill)
		}
	}
	return out
}

func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
