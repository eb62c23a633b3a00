package domain

// OfficerAvailability is the optional load tier reported for an officer.
type OfficerAvailability string

const (
	AvailabilityFree       OfficerAvailability = "Free"
	AvailabilityBusy       OfficerAvailability = "Busy"
	AvailabilityOverloaded OfficerAvailability = "Overloaded"
)

// Officer is an approved officer. Email is the natural key for assignment.
type Officer struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Department   string              `json:"department"`
	Availability OfficerAvailability `json:"availability,omitempty"`
}

// PendingOfficer is an officer registration awaiting admin approval.
type PendingOfficer struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Department     string `json:"department"`
	Approved       bool   `json:"approved"`
	CertificateURL string `json:"certificateUrl,omitempty"`
}

// OfficerRegistration is the self-service officer sign-up payload.
type OfficerRegistration struct {
	Name        string
	Email       string
	Password    string
	Department  string
	Certificate *Upload
}
