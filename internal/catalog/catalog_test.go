package catalog

import "testing"

func TestPriceTable(t *testing.T) {
	tests := []struct {
		membershipType string
		duration       string
		want           float64
	}{
		{TypeBasic, DurationMonthly, 8.00},
		{TypeBasic, DurationAnnually, 80.00},
		{TypeStandard, DurationMonthly, 15.00},
		{TypeStandard, DurationAnnually, 120.00},
		{TypePremium, DurationMonthly, 22.00},
		{TypePremium, DurationAnnually, 180.00},
	}

	for _, tt := range tests {
		if got := Price(tt.membershipType, tt.duration); got != tt.want {
			t.Fatalf("Price(%q, %q) = %v, want %v", tt.membershipType, tt.duration, got, tt.want)
		}
	}
}

func TestPriceUnknownPair(t *testing.T) {
	if got := Price("Gold", DurationMonthly); got != 0 {
		t.Fatalf("Price for unknown type = %v, want 0", got)
	}
	if got := Price(TypeBasic, "Weekly"); got != 0 {
		t.Fatalf("Price for unknown duration = %v, want 0", got)
	}
}

func TestValidationIsCaseSensitive(t *testing.T) {
	for _, mt := range MembershipTypes {
		if !IsValidMembershipType(mt) {
			t.Fatalf("expected %q to be a valid membership type", mt)
		}
	}
	if IsValidMembershipType("basic") {
		t.Fatal("membership type validation must be case-sensitive")
	}

	for _, d := range MembershipDurations {
		if !IsValidDuration(d) {
			t.Fatalf("expected %q to be a valid duration", d)
		}
	}
	if IsValidDuration("monthly") {
		t.Fatal("duration validation must be case-sensitive")
	}

	for _, pm := range PaymentMethods {
		if !IsValidPaymentMethod(pm) {
			t.Fatalf("expected %q to be a valid payment method", pm)
		}
	}
	if IsValidPaymentMethod("paypal") {
		t.Fatal("payment method validation must be case-sensitive")
	}
}

func TestPeriodDaysIsCaseInsensitive(t *testing.T) {
	tests := []struct {
		duration string
		want     int
	}{
		{"Monthly", 30},
		{"monthly", 30},
		{"MONTHLY", 30},
		{"Annually", 365},
		{"annually", 365},
		{"weekly", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := PeriodDays(tt.duration); got != tt.want {
			t.Fatalf("PeriodDays(%q) = %d, want %d", tt.duration, got, tt.want)
		}
	}
}
