package request

// Status is the short workflow code attached to a credit request. The
// database stores the descriptive label; the code is what executives and
// the API exchange.
type Status string

const (
	StatusInitialReview        Status = "E1"
	StatusPendingDocumentation Status = "E2"
	StatusUnderEvaluation      Status = "E3"
	StatusPreApproved          Status = "E4"
	StatusFinalApproval        Status = "E5"
	StatusApproved             Status = "E6"
	StatusRejected             Status = "E7"
	StatusCancelledByClient    Status = "E8"
	StatusInDisbursement       Status = "E9"
)

var statusLabels = map[Status]string{
	StatusInitialReview:        "Initial Review",
	StatusPendingDocumentation: "Pending Documentation",
	StatusUnderEvaluation:      "Under Evaluation",
	StatusPreApproved:          "Pre-Approved",
	StatusFinalApproval:        "Final Approval",
	StatusApproved:             "Approved",
	StatusRejected:             "Rejected",
	StatusCancelledByClient:    "Cancelled by Client",
	StatusInDisbursement:       "In Disbursement",
}

// Valid reports whether s is one of the nine workflow codes.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the descriptive form stored on the request, or the empty
// string for an unknown code.
func (s Status) Label() string {
	return statusLabels[s]
}
