package enums

import "fmt"

// ResourceKind distinguishes the two stockable entity families the inventory
// ledger moves quantity for. Both share the same ledger algorithm.
type ResourceKind string

const (
	ResourceKindMaterial ResourceKind = "material"
	ResourceKindTool     ResourceKind = "tool"
)

// IsValid reports whether the kind names a stockable resource family.
func (k ResourceKind) IsValid() bool {
	switch k {
	case ResourceKindMaterial, ResourceKindTool:
		return true
	default:
		return false
	}
}

// ParseResourceKind converts a raw string into a ResourceKind. The plural
// route-segment spellings are accepted as well.
func ParseResourceKind(value string) (ResourceKind, error) {
	switch value {
	case "material", "materials":
		return ResourceKindMaterial, nil
	case "tool", "tools":
		return ResourceKindTool, nil
	default:
		return "", fmt.Errorf("invalid resource kind %q", value)
	}
}
