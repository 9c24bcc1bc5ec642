package model

// ParticipantProfile is the public view of a participant's profile record.
// The owning identity is the lookup key and is not repeated here.
type ParticipantProfile struct {
	Active                bool   `json:"active"`                                     // Always true once a profile exists
	Alias                 string `json:"alias,omitempty" metadata:",optional"`       // Empty means absent
	MetadataURL           string `json:"metadataUrl,omitempty" metadata:",optional"` // Empty means absent
	RegistrationTimestamp uint64 `json:"registrationTimestamp"`                      // Registry sequence at first write, never updated
}

// ProfileUpdate carries the caller-supplied content fields of a profile upsert.
type ProfileUpdate struct {
	Alias       string
	MetadataURL string
}
