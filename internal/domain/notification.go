package domain

import "errors"

const (
	KindInfo    = "info"
	KindSuccess = "success"
	KindWarning = "warning"
	KindAction  = "action"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

const (
	CategoryAccount  = "account"
	CategoryWallet   = "wallet"
	CategoryKYC      = "kyc"
	CategorySecurity = "security"
	CategoryContact  = "contact"
	CategoryCard     = "card"
)

var ErrInvalidKind = errors.New("invalid notification kind")

// IsValidKind reports whether value is a known notification kind. Kind is
// optional metadata, so the empty string is valid.
func IsValidKind(value string) bool {
	switch value {
	case "", KindInfo, KindSuccess, KindWarning, KindAction:
		return true
	default:
		return false
	}
}
