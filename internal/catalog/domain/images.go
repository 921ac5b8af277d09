package domain

import (
	"slices"
	"strings"
)

// ImageFields holds every place the backend may put a plan's pictures.
type ImageFields struct {
	Images      []string
	MainImage   string
	CoverImage  string
	Thumbnail   string
	FinalImages []string
}

// NormalizeImages resolves the image list of a plan. Resolution order is the
// explicit list, then the first single-image field, then the final-image list,
// then the placeholder. A list with at least one non-blank entry is returned
// as given. The result is never empty and never aliases the input.
func NormalizeImages(f ImageFields) []string {
	if hasNonBlank(f.Images) {
		return slices.Clone(f.Images)
	}
	for _, single := range []string{f.MainImage, f.CoverImage, f.Thumbnail} {
		if s := strings.TrimSpace(single); s != "" {
			return []string{s}
		}
	}
	if hasNonBlank(f.FinalImages) {
		return slices.Clone(f.FinalImages)
	}
	return []string{PlaceholderImage}
}

func hasNonBlank(in []string) bool {
	return slices.ContainsFunc(in, func(s string) bool { return strings.TrimSpace(s) != "" })
}
