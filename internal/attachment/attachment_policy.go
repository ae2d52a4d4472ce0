package attachment

import "strings"

type Category string

const (
	CategoryResume       Category = "resume"
	CategoryProfileImage Category = "profileImage"
	CategoryGalleryImage Category = "galleryImage"
)

// Policy describes what a category accepts. AllowedTypes entries are exact
// media types or a "type/*" wildcard. MaxFiles of 0 means unlimited.
type Policy struct {
	AllowedTypes []string
	MaxBytes     int64
	MaxFiles     int
}

type Policies map[Category]Policy

func DefaultPolicies() Policies {
	return Policies{
		CategoryResume: {
			AllowedTypes: []string{"application/pdf"},
			MaxBytes:     2 << 20,
			MaxFiles:     1,
		},
		CategoryProfileImage: {
			AllowedTypes: []string{"image/*"},
			MaxBytes:     10 << 20,
			MaxFiles:     1,
		},
		CategoryGalleryImage: {
			AllowedTypes: []string{"image/*"},
			MaxBytes:     10 << 20,
			MaxFiles:     10,
		},
	}
}

// WithLimits returns a copy of p with configured size and count limits.
func (p Policies) WithLimits(resumeMaxBytes, imageMaxBytes int64, galleryMaxFiles int) Policies {
	out := make(Policies, len(p))
	for cat, policy := range p {
		switch cat {
		case CategoryResume:
			policy.MaxBytes = resumeMaxBytes
		case CategoryProfileImage:
			policy.MaxBytes = imageMaxBytes
		case CategoryGalleryImage:
			policy.MaxBytes = imageMaxBytes
			policy.MaxFiles = galleryMaxFiles
		}
		out[cat] = policy
	}
	return out
}

// Accepts reports whether contentType (parameters allowed) matches the policy.
func (p Policy) Accepts(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	for _, allowed := range p.AllowedTypes {
		if prefix, ok := strings.CutSuffix(allowed, "*"); ok {
			if strings.HasPrefix(mediaType, prefix) {
				return true
			}
			continue
		}
		if mediaType == allowed {
			return true
		}
	}
	return false
}
