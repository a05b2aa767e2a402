package delivery

// BillingStatus marks whether a delivery note has been invoiced.
// It is integer-backed in storage; only Pending is exercised today, the
// remaining values are reserved for the invoicing workflow.
type BillingStatus int

const (
	BillingStatusPending BillingStatus = iota
	BillingStatusInvoiced
)

// IsValid checks if the status is a known BillingStatus
func (s BillingStatus) IsValid() bool {
	switch s {
	case BillingStatusPending, BillingStatusInvoiced:
		return true
	}
	return false
}

// String returns the string representation of BillingStatus
func (s BillingStatus) String() string {
	switch s {
	case BillingStatusPending:
		return "PENDING"
	case BillingStatusInvoiced:
		return "INVOICED"
	}
	return "UNKNOWN"
}
