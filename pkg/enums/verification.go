package enums

import "fmt"

// VerificationStatus tracks an admin's disposition of a business verification.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "Pending"
	VerificationStatusApproved VerificationStatus = "Approved"
	VerificationStatusRejected VerificationStatus = "Rejected"
)

var validVerificationStatuses = []VerificationStatus{
	VerificationStatusPending,
	VerificationStatusApproved,
	VerificationStatusRejected,
}

// String implements fmt.Stringer.
func (s VerificationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known VerificationStatus.
func (s VerificationStatus) IsValid() bool {
	for _, candidate := range validVerificationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsDecision reports whether the status is one an admin may set.
func (s VerificationStatus) IsDecision() bool {
	return s == VerificationStatusApproved || s == VerificationStatusRejected
}

// ParseVerificationStatus converts raw input into a VerificationStatus.
func ParseVerificationStatus(value string) (VerificationStatus, error) {
	for _, candidate := range validVerificationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid verification status %q", value)
}

// BusinessType is the kind of business a seller applicant declares.
type BusinessType string

const (
	BusinessTypeDropshipper BusinessType = "dropshipper"
	BusinessTypeWholesaler  BusinessType = "wholesaler"
	BusinessTypeInfluencer  BusinessType = "influencer"
)

var validBusinessTypes = []BusinessType{
	BusinessTypeDropshipper,
	BusinessTypeWholesaler,
	BusinessTypeInfluencer,
}

// String implements fmt.Stringer.
func (b BusinessType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BusinessType.
func (b BusinessType) IsValid() bool {
	for _, candidate := range validBusinessTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBusinessType converts raw input into a BusinessType.
func ParseBusinessType(value string) (BusinessType, error) {
	for _, candidate := range validBusinessTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid business type %q", value)
}
