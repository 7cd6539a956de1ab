package enums

import "fmt"

// CancelRequestStatus tracks the review state of a cancellation request.
type CancelRequestStatus string

const (
	CancelRequestStatusPending  CancelRequestStatus = "pending"
	CancelRequestStatusApproved CancelRequestStatus = "approved"
	CancelRequestStatusRejected CancelRequestStatus = "rejected"
)

var validCancelRequestStatuses = []CancelRequestStatus{
	CancelRequestStatusPending,
	CancelRequestStatusApproved,
	CancelRequestStatusRejected,
}

// String implements fmt.Stringer.
func (c CancelRequestStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CancelRequestStatus.
func (c CancelRequestStatus) IsValid() bool {
	for _, candidate := range validCancelRequestStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCancelRequestStatus converts raw input into a CancelRequestStatus.
func ParseCancelRequestStatus(value string) (CancelRequestStatus, error) {
	for _, candidate := range validCancelRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cancel request status %q", value)
}
