package response

import (
	"save-serve/internal/domain/claim"
	"save-serve/internal/usecase/commands"
	"save-serve/internal/usecase/queries"
)

const (
	msgAccepted       = "Claim accepted. The donor has been notified."
	msgAlreadyClaimed = "This item was just claimed by someone else."
	msgNotEligible    = "You are not eligible for this item."
	msgExpired        = "The pickup window for this item has ended."
	msgNotAvailable   = "This item is no longer available."
)

// ClaimResponse is returned with 200 for every resolved claim, accepted or
// not.
type ClaimResponse struct {
	Outcome        string `json:"outcome"`
	Reason         string `json:"reason,omitempty"`
	Message        string `json:"message"`
	DonationID     string `json:"donation_id"`
	OrganizationID string `json:"organization_id"`
	ClaimedAt      *int64 `json:"claimed_at,omitempty"`
}

func FromClaimResult(r claim.Result) *ClaimResponse {
	res := &ClaimResponse{
		Outcome:        string(r.Outcome),
		Reason:         r.Code(),
		Message:        claimMessage(r),
		DonationID:     r.DonationID.String(),
		OrganizationID: r.OrganizationID.String(),
	}
	if r.ClaimedAt != nil {
		at := r.ClaimedAt.Unix()
		res.ClaimedAt = &at
	}
	return res
}

func claimMessage(r claim.Result) string {
	if r.IsAccepted() {
		return msgAccepted
	}
	switch r.Reason {
	case claim.ReasonAlreadyClaimed:
		return msgAlreadyClaimed
	case claim.ReasonNotEligible:
		return msgNotEligible
	case claim.ReasonExpired:
		return msgExpired
	default:
		return msgNotAvailable
	}
}

type ClaimAttemptResponse struct {
	DonationID     string `json:"donation_id"`
	OrganizationID string `json:"organization_id"`
	AttemptedAt    int64  `json:"attempted_at"`
	Outcome        string `json:"outcome"`
	Reason         string `json:"reason,omitempty"`
}

func FromClaimAttempts(views []*queries.ClaimAttemptView) []*ClaimAttemptResponse {
	return copyList[ClaimAttemptResponse](views)
}

type PickupResponse struct {
	DonationID string  `json:"donation_id"`
	Meals      int64   `json:"meals"`
	WeightKg   float64 `json:"weight_kg"`
	CO2Kg      float64 `json:"co2_kg"`
	Replayed   bool    `json:"replayed"`
}

func FromPickupResult(donationID string, r *commands.PickupResult) *PickupResponse {
	return &PickupResponse{
		DonationID: donationID,
		Meals:      r.Delta.Meals,
		WeightKg:   r.Delta.WeightKg,
		CO2Kg:      r.Delta.CO2Kg,
		Replayed:   r.Replayed,
	}
}
