package risk

// Tier is the coarse cross-lender risk classification.
type Tier string

const (
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierRed    Tier = "red"
)

// Loan statuses as reported by other lenders. The set is open-ended; the
// view only gives PAID / OWING / OVERDUE special date handling.
const (
	LoanPaid    = "PAID"
	LoanOwing   = "OWING"
	LoanOverdue = "OVERDUE"
)

// LoanSummary is one lender's view of the queried identity, rendered exactly
// in the order the backend returns.
type LoanSummary struct {
	LenderName   string `json:"lenderName"`
	LenderBranch string `json:"lenderBranch,omitempty"`
	LenderPhone  string `json:"lenderPhone,omitempty"`
	Status       string `json:"status"`
	DueDate      string `json:"dueDate,omitempty"`
	PaidDate     string `json:"paidDate,omitempty"`
}

// Report is the aggregated cross-lender answer for one identity key.
type Report struct {
	FullName    string        `json:"fullName"`
	Risk        Tier          `json:"risk"`
	RiskLabel   string        `json:"riskLabel"`
	ActiveLoans []LoanSummary `json:"activeLoans"`
}
