package converter

import (
	"time"

	"save-serve/internal/domain/donation"
	"save-serve/internal/domain/geo"
	"save-serve/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// DonationColumns is the select list ScanDonation expects.
const DonationColumns = `id, donor_id, title, description, food_types, portions, weight_kg,
	latitude, longitude, address, pickup_start, pickup_end, status,
	claimed_by, claimed_at, completed_at, image_file_ids, special_instructions,
	version, created_at, updated_at`

type donationRow struct {
	ID                  uuid.UUID
	DonorID             uuid.UUID
	Title               string
	Description         string
	FoodTypes           []string
	Portions            int32
	WeightKg            float64
	Latitude            float64
	Longitude           float64
	Address             string
	PickupStart         time.Time
	PickupEnd           time.Time
	Status              string
	ClaimedBy           pgtype.UUID
	ClaimedAt           pgtype.Timestamptz
	CompletedAt         pgtype.Timestamptz
	ImageFileIDs        []string
	SpecialInstructions string
	Version             int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func ScanDonation(row pgx.Row) (*donation.Donation, error) {
	var r donationRow
	if err := row.Scan(
		&r.ID, &r.DonorID, &r.Title, &r.Description, &r.FoodTypes, &r.Portions, &r.WeightKg,
		&r.Latitude, &r.Longitude, &r.Address, &r.PickupStart, &r.PickupEnd, &r.Status,
		&r.ClaimedBy, &r.ClaimedAt, &r.CompletedAt, &r.ImageFileIDs, &r.SpecialInstructions,
		&r.Version, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return donationToDomain(r)
}

func ScanDonations(rows pgx.Rows) ([]*donation.Donation, error) {
	defer rows.Close()
	out := make([]*donation.Donation, 0)
	for rows.Next() {
		d, err := ScanDonation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func donationToDomain(r donationRow) (*donation.Donation, error) {
	status, err := donation.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}
	foodTypes := make(donation.FoodTypes, len(r.FoodTypes))
	for i, f := range r.FoodTypes {
		foodTypes[i] = donation.FoodType(f)
	}

	return donation.Reconstruct(donation.Snapshot{
		ID:          r.ID,
		DonorID:     r.DonorID,
		Title:       r.Title,
		Description: r.Description,
		FoodTypes:   foodTypes,
		Quantity:    donation.ReconstructQuantity(int(r.Portions), r.WeightKg),
		Location: geo.Location{
			Point:   geo.Point{Lat: r.Latitude, Lng: r.Longitude},
			Address: r.Address,
		},
		Window:              donation.ReconstructPickupWindow(r.PickupStart.UTC(), r.PickupEnd.UTC()),
		Status:              status,
		ClaimedBy:           pgconv.UUIDPtrFromPgtype(r.ClaimedBy),
		ClaimedAt:           pgconv.TimePtrFromPgtype(r.ClaimedAt),
		CompletedAt:         pgconv.TimePtrFromPgtype(r.CompletedAt),
		ImageFileIDs:        r.ImageFileIDs,
		SpecialInstructions: r.SpecialInstructions,
		CreatedAt:           r.CreatedAt.UTC(),
		UpdatedAt:           r.UpdatedAt.UTC(),
		Version:             r.Version,
	}), nil
}

// DonationArgs returns the column values in DonationColumns order.
func DonationArgs(d *donation.Donation) []any {
	s := d.Snapshot()
	images := s.ImageFileIDs
	if images == nil {
		images = []string{}
	}
	return []any{
		s.ID, s.DonorID, s.Title, s.Description, s.FoodTypes.Strings(), int32(s.Quantity.Portions()), s.Quantity.WeightKg(),
		s.Location.Point.Lat, s.Location.Point.Lng, s.Location.Address, s.Window.Start(), s.Window.End(), s.Status.String(),
		pgconv.UUIDPtrToPgtype(s.ClaimedBy), pgconv.TimePtrToPgtype(s.ClaimedAt), pgconv.TimePtrToPgtype(s.CompletedAt),
		images, s.SpecialInstructions,
		s.Version, s.CreatedAt, s.UpdatedAt,
	}
}
