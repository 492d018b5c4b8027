package borrower

// Payment statuses a borrower record can hold. Anything else is rejected
// before reaching the network.
const (
	StatusPaid    = "paid"
	StatusOwing   = "owing"
	StatusOverdue = "overdue"
)

// ValidStatus reports whether s is one of the three enumerated payment
// statuses.
func ValidStatus(s string) bool {
	return s == StatusPaid || s == StatusOwing || s == StatusOverdue
}

// Record is one entry in a lender's borrower roster. Ownership scoping is
// enforced server-side and trusted by the client.
type Record struct {
	ID         string `json:"id"`
	FullName   string `json:"fullName"`
	NationalID string `json:"nationalId"`
	Status     string `json:"status"`
	DueDate    string `json:"dueDate,omitempty"`
	PaidDate   string `json:"paidDate,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// AddInput is the payload for creating a roster entry. FullName, NationalID
// and Status are required; DueDate is meaningful only for owing/overdue.
type AddInput struct {
	FullName   string `json:"fullName"`
	NationalID string `json:"nationalId"`
	Status     string `json:"status"`
	DueDate    string `json:"dueDate,omitempty"`
}

// StatusUpdate is a single structured update-request value, validated
// completely before any request is dispatched. Exactly one of PaidDate or
// DueDate may accompany the matching status family; a nil pointer means the
// field is absent from the outgoing body entirely.
//
// Absence signals intent: no paidDate with status "paid" means "use the
// server-assigned date now"; no dueDate with owing/overdue means "keep the
// stored due date".
type StatusUpdate struct {
	Status   string  `json:"status"`
	PaidDate *string `json:"paidDate,omitempty"`
	DueDate  *string `json:"dueDate,omitempty"`
}
