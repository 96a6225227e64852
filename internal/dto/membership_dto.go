package dto

type BuyMembershipRequest struct {
	MembershipType string `json:"membership_type"`
	Duration       string `json:"duration"`
	ModeOfPayment  string `json:"mode_of_payment"`
}

type UpdateMembershipRequest struct {
	MembershipType string `json:"membership_type"`
	Duration       string `json:"duration"`
	AutoRenew      *bool  `json:"auto_renew,omitempty"`
}

// MessageResponse is the success shape of the mutating membership endpoints.
type MessageResponse struct {
	ReturnCode int    `json:"return_code"`
	Message    string `json:"message"`
}

// FailureResponse is the error shape of the mutating membership endpoints.
type FailureResponse struct {
	ReturnCode int    `json:"return_code"`
	Error      string `json:"error"`
}

type CurrentMembershipResponse struct {
	MembershipType     string  `json:"membership_type"`
	MembershipDuration string  `json:"membership_duration"`
	ModeOfPayment      string  `json:"mode_of_payment"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	AutoRenew          bool    `json:"auto_renew"`
	Price              float64 `json:"price"`
}

type BillingCycleDateResponse struct {
	NextBillingCycleDate *string `json:"next_billing_cycle_date"`
}

type PendingMembershipResponse struct {
	PendingMembershipType     *string `json:"pending_membership_type"`
	PendingMembershipDuration *string `json:"pending_membership_duration,omitempty"`
}

type HasActiveMembershipResponse struct {
	HasActiveMembership bool `json:"has_active_membership"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
