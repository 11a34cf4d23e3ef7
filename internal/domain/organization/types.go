package organization

import "errors"

type Type string

const (
	TypeShelter         Type = "shelter"
	TypeFoodBank        Type = "food_bank"
	TypeCommunityCenter Type = "community_center"
	TypeNGO             Type = "ngo"
)

var (
	ErrInvalidType               = errors.New("invalid organization type")
	ErrInvalidVerificationStatus = errors.New("invalid verification status")
)

func ParseType(s string) (Type, error) {
	t := Type(s)
	switch t {
	case TypeShelter, TypeFoodBank, TypeCommunityCenter, TypeNGO:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

func ParseVerificationStatus(s string) (VerificationStatus, error) {
	v := VerificationStatus(s)
	switch v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return v, nil
	default:
		return "", ErrInvalidVerificationStatus
	}
}

func (v VerificationStatus) String() string { return string(v) }
