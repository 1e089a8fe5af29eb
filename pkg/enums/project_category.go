package enums

import "fmt"

// ProjectCategory is the closed set of craft categories a project belongs to.
type ProjectCategory string

const (
	CategoryWoodworking  ProjectCategory = "woodworking"
	CategoryKnitting     ProjectCategory = "knitting"
	CategoryCrochet      ProjectCategory = "crochet"
	CategorySewing       ProjectCategory = "sewing"
	CategoryPottery      ProjectCategory = "pottery"
	CategoryJewelry      ProjectCategory = "jewelry"
	CategoryPapercraft   ProjectCategory = "papercraft"
	CategoryPainting     ProjectCategory = "painting"
	CategoryLeathercraft ProjectCategory = "leathercraft"
	CategoryModelmaking  ProjectCategory = "modelmaking"
)

// IsValid reports whether the category is part of the closed set.
func (c ProjectCategory) IsValid() bool {
	switch c {
	case CategoryWoodworking, CategoryKnitting, CategoryCrochet, CategorySewing,
		CategoryPottery, CategoryJewelry, CategoryPapercraft, CategoryPainting,
		CategoryLeathercraft, CategoryModelmaking:
		return true
	default:
		return false
	}
}

// ParseProjectCategory converts a raw string into a ProjectCategory.
func ParseProjectCategory(value string) (ProjectCategory, error) {
	c := ProjectCategory(value)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid project category %q", value)
	}
	return c, nil
}
