package donation

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"save-serve/internal/domain/geo"
	"save-serve/internal/pkg/clock"

	"github.com/google/uuid"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
	maxImages         = 10
)

var (
	ErrInvalidTransition = errors.New("invalid donation status transition")
	ErrNotDonor          = errors.New("only the donor may modify this donation")
	ErrNotClaimant       = errors.New("only the claiming organization may do this")
	ErrWindowEnded       = errors.New("pickup window has ended")
)

type NewParams struct {
	DonorID             uuid.UUID
	Title               string
	Description         string
	FoodTypes           FoodTypes
	Quantity            Quantity
	Location            geo.Location
	Window              PickupWindow
	ImageFileIDs        []string
	SpecialInstructions string
}

// Snapshot carries every persisted field. Repositories build one from a row
// and call Reconstruct.
type Snapshot struct {
	ID                  uuid.UUID
	DonorID             uuid.UUID
	Title               string
	Description         string
	FoodTypes           FoodTypes
	Quantity            Quantity
	Location            geo.Location
	Window              PickupWindow
	Status              Status
	ClaimedBy           *uuid.UUID
	ClaimedAt           *time.Time
	CompletedAt         *time.Time
	ImageFileIDs        []string
	SpecialInstructions string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int64
}

type Donation struct {
	id                  uuid.UUID
	donorID             uuid.UUID
	title               string
	description         string
	foodTypes           FoodTypes
	quantity            Quantity
	location            geo.Location
	window              PickupWindow
	status              Status
	claimedBy           *uuid.UUID
	claimedAt           *time.Time
	completedAt         *time.Time
	imageFileIDs        []string
	specialInstructions string
	createdAt           time.Time
	updatedAt           time.Time
	version             int64
}

func NewDonation(clk clock.Clock, p NewParams) (*Donation, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLen {
		return nil, ErrInvalidTitle
	}
	if utf8.RuneCountInString(p.Description) > maxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}
	if len(p.FoodTypes) == 0 {
		return nil, ErrNoFoodTypes
	}
	if p.Quantity.portions < 1 {
		return nil, ErrInvalidPortions
	}
	if !p.Location.Point.Valid() {
		return nil, geo.ErrInvalidCoordinates
	}
	if p.Window.end.IsZero() {
		return nil, ErrInvalidWindow
	}
	if len(p.ImageFileIDs) > maxImages {
		return nil, ErrTooManyImages
	}

	now := clk.Now()
	return &Donation{
		id:                  uuid.New(),
		donorID:             p.DonorID,
		title:               title,
		description:         strings.TrimSpace(p.Description),
		foodTypes:           p.FoodTypes,
		quantity:            p.Quantity,
		location:            p.Location,
		window:              p.Window,
		status:              StatusAvailable,
		imageFileIDs:        append([]string(nil), p.ImageFileIDs...),
		specialInstructions: strings.TrimSpace(p.SpecialInstructions),
		createdAt:           now,
		updatedAt:           now,
		version:             1,
	}, nil
}

func Reconstruct(s Snapshot) *Donation {
	return &Donation{
		id:                  s.ID,
		donorID:             s.DonorID,
		title:               s.Title,
		description:         s.Description,
		foodTypes:           s.FoodTypes,
		quantity:            s.Quantity,
		location:            s.Location,
		window:              s.Window,
		status:              s.Status,
		claimedBy:           s.ClaimedBy,
		claimedAt:           s.ClaimedAt,
		completedAt:         s.CompletedAt,
		imageFileIDs:        s.ImageFileIDs,
		specialInstructions: s.SpecialInstructions,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		version:             s.Version,
	}
}

func (d *Donation) Snapshot() Snapshot {
	return Snapshot{
		ID:                  d.id,
		DonorID:             d.donorID,
		Title:               d.title,
		Description:         d.description,
		FoodTypes:           d.foodTypes,
		Quantity:            d.quantity,
		Location:            d.location,
		Window:              d.window,
		Status:              d.status,
		ClaimedBy:           d.claimedBy,
		ClaimedAt:           d.claimedAt,
		CompletedAt:         d.completedAt,
		ImageFileIDs:        d.imageFileIDs,
		SpecialInstructions: d.specialInstructions,
		CreatedAt:           d.createdAt,
		UpdatedAt:           d.updatedAt,
		Version:             d.version,
	}
}

// IsClaimable reports whether an organization could claim the donation at now.
func (d *Donation) IsClaimable(now time.Time) bool {
	return d.status == StatusAvailable && !d.window.Ended(now)
}

func (d *Donation) IsDueForExpiry(now time.Time) bool {
	return (d.status == StatusAvailable || d.status == StatusClaimPending) && d.window.Ended(now)
}

func (d *Donation) transition(next Status, now time.Time) error {
	if !d.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	d.status = next
	d.updatedAt = now
	d.version++
	return nil
}

// HoldFor places a short-lived hold while the claim is being committed.
func (d *Donation) HoldFor(orgID uuid.UUID, now time.Time) error {
	if d.window.Ended(now) {
		return ErrWindowEnded
	}
	if d.status != StatusAvailable {
		return ErrInvalidTransition
	}
	if err := d.transition(StatusClaimPending, now); err != nil {
		return err
	}
	id := orgID
	d.claimedBy = &id
	return nil
}

// Claim assigns the donation to orgID. It accepts either an available
// donation or one held for the same organization.
func (d *Donation) Claim(orgID uuid.UUID, now time.Time) error {
	if d.window.Ended(now) {
		return ErrWindowEnded
	}
	if d.status == StatusClaimPending && (d.claimedBy == nil || *d.claimedBy != orgID) {
		return ErrInvalidTransition
	}
	if err := d.transition(StatusClaimed, now); err != nil {
		return err
	}
	id := orgID
	at := now
	d.claimedBy = &id
	d.claimedAt = &at
	return nil
}

// Release returns a held or claimed donation to the pool. Only the holder
// may release it.
func (d *Donation) Release(orgID uuid.UUID, now time.Time) error {
	if d.status != StatusClaimed && d.status != StatusClaimPending {
		return ErrInvalidTransition
	}
	if d.claimedBy == nil || *d.claimedBy != orgID {
		return ErrNotClaimant
	}
	if err := d.transition(StatusAvailable, now); err != nil {
		return err
	}
	d.claimedBy = nil
	d.claimedAt = nil
	return nil
}

func (d *Donation) Cancel(donorID uuid.UUID, now time.Time) error {
	if d.donorID != donorID {
		return ErrNotDonor
	}
	return d.transition(StatusCancelled, now)
}

func (d *Donation) Expire(now time.Time) error {
	if !d.IsDueForExpiry(now) {
		return ErrInvalidTransition
	}
	if err := d.transition(StatusExpired, now); err != nil {
		return err
	}
	d.claimedBy = nil
	return nil
}

func (d *Donation) CompletePickup(orgID uuid.UUID, now time.Time) error {
	if d.status != StatusClaimed {
		return ErrInvalidTransition
	}
	if d.claimedBy == nil || *d.claimedBy != orgID {
		return ErrNotClaimant
	}
	if err := d.transition(StatusPickedUp, now); err != nil {
		return err
	}
	at := now
	d.completedAt = &at
	return nil
}

func (d *Donation) ID() uuid.UUID               { return d.id }
func (d *Donation) DonorID() uuid.UUID          { return d.donorID }
func (d *Donation) Title() string               { return d.title }
func (d *Donation) Description() string         { return d.description }
func (d *Donation) FoodTypes() FoodTypes        { return d.foodTypes }
func (d *Donation) Quantity() Quantity          { return d.quantity }
func (d *Donation) Location() geo.Location      { return d.location }
func (d *Donation) Window() PickupWindow        { return d.window }
func (d *Donation) Status() Status              { return d.status }
func (d *Donation) ClaimedBy() *uuid.UUID       { return d.claimedBy }
func (d *Donation) ClaimedAt() *time.Time       { return d.claimedAt }
func (d *Donation) CompletedAt() *time.Time     { return d.completedAt }
func (d *Donation) ImageFileIDs() []string      { return d.imageFileIDs }
func (d *Donation) SpecialInstructions() string { return d.specialInstructions }
func (d *Donation) CreatedAt() time.Time        { return d.createdAt }
func (d *Donation) UpdatedAt() time.Time        { return d.updatedAt }
func (d *Donation) Version() int64              { return d.version }
