package core

import (
	"fmt"
	"strings"
)

var remotePrefixes = []string{"https://", "http://"}

// IsLocalReference reports whether ref names a file on this machine rather
// than an already uploaded URL.
func IsLocalReference(ref string) bool {
	lower := strings.ToLower(ref)
	for _, p := range remotePrefixes {
		if strings.HasPrefix(lower, p) {
			return false
		}
	}
	return true
}

// Locator addresses one image entry within a record.
type Locator struct {
	Variant int // -1 for the record's own image map
	Role    Role
}

func (l Locator) String() string {
	if l.Variant < 0 {
		return fmt.Sprintf("images.%s", l.Role)
	}
	return fmt.Sprintf("variants[%d].images.%s", l.Variant, l.Role)
}

type Reference struct {
	Locator Locator
	Value   string
}

// ExtractReferences lists every populated role of the record: its own image
// map first, then each variant in stored order, roles in canonical order.
func ExtractReferences(r *Record) []Reference {
	var refs []Reference
	switch r.Shape() {
	case ShapeImages:
		refs = appendImageRefs(refs, -1, r.Images)
	case ShapeVariants:
		refs = appendVariantRefs(refs, r.Variants)
	case ShapeImagesAndVariants:
		refs = appendImageRefs(refs, -1, r.Images)
		refs = appendVariantRefs(refs, r.Variants)
	case ShapeBare:
	}
	return refs
}

func appendVariantRefs(refs []Reference, variants []*Variant) []Reference {
	for i, v := range variants {
		refs = appendImageRefs(refs, i, v.Images)
	}
	return refs
}

func appendImageRefs(refs []Reference, variant int, images *ImageSet) []Reference {
	for _, role := range Roles {
		if v, ok := images.Get(role); ok {
			refs = append(refs, Reference{Locator: Locator{Variant: variant, Role: role}, Value: v})
		}
	}
	return refs
}

// SetReference overwrites the entry addressed by loc.
func (r *Record) SetReference(loc Locator, value string) error {
	if loc.Variant < 0 {
		if r.Images == nil {
			return fmt.Errorf("record has no images map for %s", loc)
		}
		return r.Images.Set(loc.Role, value)
	}
	if loc.Variant >= len(r.Variants) || r.Variants[loc.Variant].Images == nil {
		return fmt.Errorf("record has no images map for %s", loc)
	}
	return r.Variants[loc.Variant].Images.Set(loc.Role, value)
}
