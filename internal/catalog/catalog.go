// Package catalog holds the fixed membership offering: the valid membership
// types, durations and payment methods, and the price table keyed by
// (type, duration). All values are process-wide constants with no lifecycle.
package catalog

import "strings"

const (
	TypeBasic    = "Basic"
	TypeStandard = "Standard"
	TypePremium  = "Premium"

	DurationMonthly  = "Monthly"
	DurationAnnually = "Annually"
)

// MembershipTypes lists the valid membership tiers.
var MembershipTypes = []string{TypeBasic, TypeStandard, TypePremium}

// MembershipDurations lists the valid billing durations.
var MembershipDurations = []string{DurationMonthly, DurationAnnually}

// PaymentMethods lists the accepted modes of payment. Mode of payment is a
// label on the membership record, not a payment integration.
var PaymentMethods = []string{"PayPal", "Google Pay", "Apple Pay", "AliPay", "Credit Card"}

// prices maps (type, duration) to the fixed price in the store currency.
var prices = map[string]map[string]float64{
	TypeBasic:    {DurationMonthly: 8.00, DurationAnnually: 80.00},
	TypeStandard: {DurationMonthly: 15.00, DurationAnnually: 120.00},
	TypePremium:  {DurationMonthly: 22.00, DurationAnnually: 180.00},
}

// Price returns the fixed price for a (type, duration) pair, or 0 when the
// pair is not in the table. Zero is not an error signal for valid enum
// values; every valid pair has a non-zero price.
func Price(membershipType, duration string) float64 {
	return prices[membershipType][duration]
}

// IsValidMembershipType reports whether s is one of the membership tiers.
// Comparison is exact and case-sensitive.
func IsValidMembershipType(s string) bool {
	return contains(MembershipTypes, s)
}

// IsValidDuration reports whether s is a valid billing duration.
// Comparison is exact and case-sensitive.
func IsValidDuration(s string) bool {
	return contains(MembershipDurations, s)
}

// IsValidPaymentMethod reports whether s is an accepted mode of payment.
func IsValidPaymentMethod(s string) bool {
	return contains(PaymentMethods, s)
}

// PeriodDays returns the length of a billing period in days for the given
// duration. Unlike the validation helpers, the match is case-insensitive:
// stored durations are compared with EqualFold wherever day arithmetic is
// done, so records written with legacy casing keep renewing correctly.
// Returns 0 for unknown durations.
func PeriodDays(duration string) int {
	switch {
	case strings.EqualFold(duration, DurationMonthly):
		return 30
	case strings.EqualFold(duration, DurationAnnually):
		return 365
	default:
		return 0
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
