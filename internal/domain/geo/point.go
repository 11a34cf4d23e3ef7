package geo

import (
	"errors"
	"math"
	"strings"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrMissingAddress     = errors.New("address is required")
)

type Point struct {
	Lat float64
	Lng float64
}

func NewPoint(lat, lng float64) (Point, error) {
	p := Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return Point{}, ErrInvalidCoordinates
	}
	return p, nil
}

// Valid reports whether p is a usable location. (0,0) is the placeholder the
// upstream forms emit for a missing location and is treated as absent.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	if p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return false
	}
	return p.Lat != 0 || p.Lng != 0
}

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	h = math.Min(1, math.Max(0, h))
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Location is a point with the human readable pickup or service address.
type Location struct {
	Point   Point
	Address string
}

func NewLocation(lat, lng float64, address string) (Location, error) {
	p, err := NewPoint(lat, lng)
	if err != nil {
		return Location{}, err
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return Location{}, ErrMissingAddress
	}
	return Location{Point: p, Address: address}, nil
}
