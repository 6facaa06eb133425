package payroll

const (
	CalcTypeFixed      = "Fixed"
	CalcTypePercentage = "Percentage"

	ApplicableAll = "All"
)

const (
	AdvancePending       = "Pending"
	AdvanceApproved      = "Approved"
	AdvanceRejected      = "Rejected"
	AdvancePartiallyPaid = "Partially Paid"
	AdvanceFullyPaid     = "Fully Paid"
	AdvanceCancelled     = "Cancelled"
)

const (
	RecordStatusPending = "Pending"
	RecordStatusPaid    = "Paid"
)
