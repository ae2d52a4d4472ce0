package employee

// Attachments is the set of stored file references a profile owns.
type Attachments struct {
	Resume       string
	ProfileImage string
	Gallery      []string
}

// Refs lists every non-empty reference, resume first.
func (a Attachments) Refs() []string {
	refs := make([]string, 0, 2+len(a.Gallery))
	if a.Resume != "" {
		refs = append(refs, a.Resume)
	}
	if a.ProfileImage != "" {
		refs = append(refs, a.ProfileImage)
	}
	for _, ref := range a.Gallery {
		if ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}

// DesiredAttachments describes an update request after its uploads were
// stored. An empty Resume or ProfileImage keeps the previous file.
type DesiredAttachments struct {
	Resume          string
	ProfileImage    string
	RetainedGallery []string
	NewGallery      []string
}

type ReconcilePlan struct {
	Final    Attachments
	ToDelete []string
}

// Reconcile computes the attachments a profile keeps after an update and
// the previously owned references that are no longer used.
//
// Retained gallery entries the profile never owned are ignored. ToDelete
// never contains a reference that appears in Final.
func Reconcile(previous Attachments, desired DesiredAttachments) ReconcilePlan {
	final := Attachments{
		Resume:       previous.Resume,
		ProfileImage: previous.ProfileImage,
	}
	var candidates []string

	if desired.Resume != "" {
		if previous.Resume != desired.Resume {
			candidates = append(candidates, previous.Resume)
		}
		final.Resume = desired.Resume
	}
	if desired.ProfileImage != "" {
		if previous.ProfileImage != desired.ProfileImage {
			candidates = append(candidates, previous.ProfileImage)
		}
		final.ProfileImage = desired.ProfileImage
	}

	owned := make(map[string]struct{}, len(previous.Gallery))
	for _, ref := range previous.Gallery {
		owned[ref] = struct{}{}
	}
	retained := make(map[string]struct{}, len(desired.RetainedGallery))
	final.Gallery = make([]string, 0, len(desired.RetainedGallery)+len(desired.NewGallery))
	for _, ref := range desired.RetainedGallery {
		if _, ok := owned[ref]; !ok {
			continue
		}
		if _, dup := retained[ref]; dup {
			continue
		}
		retained[ref] = struct{}{}
		final.Gallery = append(final.Gallery, ref)
	}
	for _, ref := range previous.Gallery {
		if _, ok := retained[ref]; !ok {
			candidates = append(candidates, ref)
		}
	}
	final.Gallery = append(final.Gallery, desired.NewGallery...)

	inUse := make(map[string]struct{})
	for _, ref := range final.Refs() {
		inUse[ref] = struct{}{}
	}
	plan := ReconcilePlan{Final: final}
	for _, ref := range candidates {
		if ref == "" {
			continue
		}
		if _, ok := inUse[ref]; ok {
			continue
		}
		inUse[ref] = struct{}{}
		plan.ToDelete = append(plan.ToDelete, ref)
	}
	return plan
}
