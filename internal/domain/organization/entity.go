package organization

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	"save-serve/internal/pkg/clock"

	"github.com/google/uuid"
)

const maxNameLen = 200

var (
	ErrInvalidName          = errors.New("organization name is required and must be at most 200 characters")
	ErrInvalidCapacity      = errors.New("capacity must be between 1 and 100000")
	ErrInvalidServiceRadius = errors.New("service radius must be at least 1 km")
	ErrNoAcceptedFoodTypes  = errors.New("at least one accepted food type is required")
	ErrInvalidVerification  = errors.New("invalid verification transition")
)

type Preferences struct {
	AcceptedFoodTypes donation.FoodTypes
	Availability      Availability
}

type NewParams struct {
	UserID                 uuid.UUID
	Name                   string
	RegistrationNumber     string
	Type                   Type
	Capacity               int
	ServiceRadiusKm        float64
	Location               geo.Location
	VehicleInfo            string
	VerificationDocFileIDs []string
	Preferences            Preferences
}

type Snapshot struct {
	ID                     uuid.UUID
	UserID                 uuid.UUID
	Name                   string
	RegistrationNumber     string
	Type                   Type
	Capacity               int
	ServiceRadiusKm        float64
	Location               geo.Location
	VehicleInfo            string
	VerificationStatus     VerificationStatus
	VerificationDocFileIDs []string
	Preferences            Preferences
	Impact                 ImpactStats
	LastActiveAt           time.Time
	Version                int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type Organization struct {
	id                     uuid.UUID
	userID                 uuid.UUID
	name                   string
	registrationNumber     string
	orgType                Type
	capacity               int
	serviceRadiusKm        float64
	location               geo.Location
	vehicleInfo            string
	verificationStatus     VerificationStatus
	verificationDocFileIDs []string
	preferences            Preferences
	impact                 ImpactStats
	lastActiveAt           time.Time
	version                int64
	createdAt              time.Time
	updatedAt              time.Time
}

// NewOrganization registers an organization in pending verification. A zero
// service radius falls back to the default.
func NewOrganization(clk clock.Clock, p NewParams) (*Organization, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLen {
		return nil, ErrInvalidName
	}
	if _, err := ParseType(string(p.Type)); err != nil {
		return nil, err
	}
	if err := validateCapacity(p.Capacity); err != nil {
		return nil, err
	}
	radius := p.ServiceRadiusKm
	if radius == 0 {
		radius = DefaultServiceRadiusKm
	}
	if err := validateRadius(radius); err != nil {
		return nil, err
	}
	if !p.Location.Point.Valid() {
		return nil, geo.ErrInvalidCoordinates
	}
	if len(p.Preferences.AcceptedFoodTypes) == 0 {
		return nil, ErrNoAcceptedFoodTypes
	}
	if len(p.Preferences.Availability.Days()) == 0 {
		return nil, ErrNoAvailableDays
	}

	now := clk.Now()
	return &Organization{
		id:                     uuid.New(),
		userID:                 p.UserID,
		name:                   name,
		registrationNumber:     strings.TrimSpace(p.RegistrationNumber),
		orgType:                p.Type,
		capacity:               p.Capacity,
		serviceRadiusKm:        radius,
		location:               p.Location,
		vehicleInfo:            strings.TrimSpace(p.VehicleInfo),
		verificationStatus:     VerificationPending,
		verificationDocFileIDs: append([]string(nil), p.VerificationDocFileIDs...),
		preferences:            p.Preferences,
		lastActiveAt:           now,
		version:                1,
		createdAt:              now,
		updatedAt:              now,
	}, nil
}

func Reconstruct(s Snapshot) *Organization {
	return &Organization{
		id:                     s.ID,
		userID:                 s.UserID,
		name:                   s.Name,
		registrationNumber:     s.RegistrationNumber,
		orgType:                s.Type,
		capacity:               s.Capacity,
		serviceRadiusKm:        s.ServiceRadiusKm,
		location:               s.Location,
		vehicleInfo:            s.VehicleInfo,
		verificationStatus:     s.VerificationStatus,
		verificationDocFileIDs: s.VerificationDocFileIDs,
		preferences:            s.Preferences,
		impact:                 s.Impact,
		lastActiveAt:           s.LastActiveAt,
		version:                s.Version,
		createdAt:              s.CreatedAt,
		updatedAt:              s.UpdatedAt,
	}
}

func (o *Organization) Snapshot() Snapshot {
	return Snapshot{
		ID:                     o.id,
		UserID:                 o.userID,
		Name:                   o.name,
		RegistrationNumber:     o.registrationNumber,
		Type:                   o.orgType,
		Capacity:               o.capacity,
		ServiceRadiusKm:        o.serviceRadiusKm,
		Location:               o.location,
		VehicleInfo:            o.vehicleInfo,
		VerificationStatus:     o.verificationStatus,
		VerificationDocFileIDs: o.verificationDocFileIDs,
		Preferences:            o.preferences,
		Impact:                 o.impact,
		LastActiveAt:           o.lastActiveAt,
		Version:                o.version,
		CreatedAt:              o.createdAt,
		UpdatedAt:              o.updatedAt,
	}
}

func (o *Organization) IsVerified() bool {
	return o.verificationStatus == VerificationVerified
}

// SetVerification applies an admin decision. Pending moves to verified or
// rejected, a verified organization can be revoked, and a rejected one goes
// back to pending when it resubmits documents.
func (o *Organization) SetVerification(next VerificationStatus, now time.Time) error {
	ok := false
	switch o.verificationStatus {
	case VerificationPending:
		ok = next == VerificationVerified || next == VerificationRejected
	case VerificationVerified:
		ok = next == VerificationRejected
	case VerificationRejected:
		ok = next == VerificationPending
	}
	if !ok {
		return ErrInvalidVerification
	}
	o.verificationStatus = next
	o.bump(now)
	return nil
}

func (o *Organization) Resubmit(docFileIDs []string, now time.Time) error {
	if err := o.SetVerification(VerificationPending, now); err != nil {
		return err
	}
	o.verificationDocFileIDs = append([]string(nil), docFileIDs...)
	return nil
}

// ProfileUpdate carries the fields an organization may change after
// registration. Nil fields are left as they are.
type ProfileUpdate struct {
	Name              *string
	Capacity          *int
	ServiceRadiusKm   *float64
	Location          *geo.Location
	VehicleInfo       *string
	AcceptedFoodTypes donation.FoodTypes
	Availability      *Availability
}

// UpdateProfile applies u atomically: nothing changes if any field is invalid.
func (o *Organization) UpdateProfile(u ProfileUpdate, now time.Time) error {
	next := *o
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" || utf8.RuneCountInString(name) > maxNameLen {
			return ErrInvalidName
		}
		next.name = name
	}
	if u.Capacity != nil {
		if err := validateCapacity(*u.Capacity); err != nil {
			return err
		}
		next.capacity = *u.Capacity
	}
	if u.ServiceRadiusKm != nil {
		if err := validateRadius(*u.ServiceRadiusKm); err != nil {
			return err
		}
		next.serviceRadiusKm = *u.ServiceRadiusKm
	}
	if u.Location != nil {
		if !u.Location.Point.Valid() {
			return geo.ErrInvalidCoordinates
		}
		next.location = *u.Location
	}
	if u.VehicleInfo != nil {
		next.vehicleInfo = strings.TrimSpace(*u.VehicleInfo)
	}
	if u.AcceptedFoodTypes != nil {
		if len(u.AcceptedFoodTypes) == 0 {
			return ErrNoAcceptedFoodTypes
		}
		next.preferences.AcceptedFoodTypes = u.AcceptedFoodTypes
	}
	if u.Availability != nil {
		if len(u.Availability.Days()) == 0 {
			return ErrNoAvailableDays
		}
		next.preferences.Availability = *u.Availability
	}
	next.bump(now)
	*o = next
	return nil
}

func (o *Organization) bump(now time.Time) {
	o.version++
	o.updatedAt = now
}

func validateCapacity(c int) error {
	if c < MinCapacity || c > MaxCapacity {
		return ErrInvalidCapacity
	}
	return nil
}

func validateRadius(km float64) error {
	if km < MinServiceRadiusKm || math.IsNaN(km) || math.IsInf(km, 0) {
		return ErrInvalidServiceRadius
	}
	return nil
}

func (o *Organization) ID() uuid.UUID                          { return o.id }
func (o *Organization) UserID() uuid.UUID                      { return o.userID }
func (o *Organization) Name() string                           { return o.name }
func (o *Organization) RegistrationNumber() string             { return o.registrationNumber }
func (o *Organization) Type() Type                             { return o.orgType }
func (o *Organization) Capacity() int                          { return o.capacity }
func (o *Organization) ServiceRadiusKm() float64               { return o.serviceRadiusKm }
func (o *Organization) Location() geo.Location                 { return o.location }
func (o *Organization) VehicleInfo() string                    { return o.vehicleInfo }
func (o *Organization) VerificationStatus() VerificationStatus { return o.verificationStatus }
func (o *Organization) VerificationDocFileIDs() []string       { return o.verificationDocFileIDs }
func (o *Organization) Preferences() Preferences               { return o.preferences }
func (o *Organization) Impact() ImpactStats                    { return o.impact }
func (o *Organization) LastActiveAt() time.Time                { return o.lastActiveAt }
func (o *Organization) Version() int64                         { return o.version }
func (o *Organization) CreatedAt() time.Time                   { return o.createdAt }
func (o *Organization) UpdatedAt() time.Time                   { return o.updatedAt }
