package domain

// UserRecord is the profile stored for the current session. The phone number
// is the natural key; every post-login step reads it. Signup fills the full
// profile, while eligibility submission creates a minimal record with a name
// derived from the phone number.
type UserRecord struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	NationalID    string `json:"nationalId,omitempty"`
	County        string `json:"county,omitempty"`
	Gender        string `json:"gender,omitempty"`
	DateOfBirth   string `json:"dob,omitempty"`
	MaritalStatus string `json:"maritalStatus,omitempty"`
	PasswordHash  string `json:"passwordHash,omitempty"`
}
