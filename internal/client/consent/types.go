package consent

// Status is the consent-disclosure lifecycle. Pending records may move to
// approved or rejected; both of those are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether the status admits no further transition.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Record is a consent-disclosure entity owned by the backend. The client
// only reads it and requests transitions.
type Record struct {
	ID              string `json:"id"`
	NationalID      string `json:"nationalId"`
	FullName        string `json:"fullName"`
	ConsentStatus   Status `json:"consentStatus"`
	ConsentFileURL  string `json:"consentFileUrl"`
	ConsentFileName string `json:"consentFileName"`
	ConsentMime     string `json:"consentMime"`
	CreatedAt       string `json:"createdAt"`
}

// HasDocument reports whether the record carries a stored file location.
// Records without one expose no viewing path at all.
func (r Record) HasDocument() bool {
	return r.ConsentFileURL != ""
}
