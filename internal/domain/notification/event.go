package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeNewDonation     Type = "new_donation"
	TypeClaimAccepted   Type = "claim_accepted"
	TypeClaimRejected   Type = "claim_rejected"
	TypeClaimReleased   Type = "claim_released"
	TypePickupCompleted Type = "pickup_completed"
	TypeDonationExpired Type = "donation_expired"
)

var routingKeys = map[Type]string{
	TypeNewDonation:     "donation.created",
	TypeClaimAccepted:   "claim.accepted",
	TypeClaimRejected:   "claim.rejected",
	TypeClaimReleased:   "claim.released",
	TypePickupCompleted: "pickup.completed",
	TypeDonationExpired: "donation.expired",
}

func (t Type) RoutingKey() string {
	if k, ok := routingKeys[t]; ok {
		return k
	}
	return "misc." + string(t)
}

// Event is what the notification collaborator receives. Delivery is outside
// this service.
type Event struct {
	ID          uuid.UUID      `json:"id"`
	Type        Type           `json:"type"`
	RecipientID uuid.UUID      `json:"recipient_id"`
	Payload     map[string]any `json:"payload,omitempty"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

func NewEvent(t Type, recipient uuid.UUID, payload map[string]any, at time.Time) Event {
	return Event{
		ID:          uuid.New(),
		Type:        t,
		RecipientID: recipient,
		Payload:     payload,
		OccurredAt:  at,
	}
}
