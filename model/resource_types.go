package model

// Confidentiality tiers accepted for a resource type. The set is closed.
const (
	ConfidentialityPublic       uint = 0
	ConfidentialityInternal     uint = 1
	ConfidentialityConfidential uint = 2
	ConfidentialityRestricted   uint = 3

	MaxConfidentialityLevel = ConfidentialityRestricted
)

var confidentialityNames = map[uint]string{
	ConfidentialityPublic:       "public",
	ConfidentialityInternal:     "internal",
	ConfidentialityConfidential: "confidential",
	ConfidentialityRestricted:   "restricted",
}

// IsValidConfidentialityLevel reports whether level is one of the defined tiers.
func IsValidConfidentialityLevel(level uint) bool {
	_, ok := confidentialityNames[level]
	return ok
}

// ConfidentialityName returns the tier name for level, or "" when level is not a tier.
func ConfidentialityName(level uint) string {
	return confidentialityNames[level]
}

// ResourceType is the public view of a registered resource-type definition.
// The type identifier is the lookup key and is omitted from the view.
type ResourceType struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	ConfidentialityLevel uint   `json:"confidentialityLevel"`
}
