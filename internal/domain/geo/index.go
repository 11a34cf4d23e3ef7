package geo

import (
	"bytes"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

const (
	defaultCellDeg = 0.5
	kmPerDegree    = EarthRadiusKm * math.Pi / 180
)

type Hit struct {
	ID         uuid.UUID
	DistanceKm float64
}

type cellKey struct {
	lat int
	lng int
}

// Index is a uniform lat/lng grid over entity locations. Queries visit only
// the cells overlapping the radius bounding box and then filter by exact
// great-circle distance. Readers run concurrently; writers are exclusive.
type Index struct {
	mu      sync.RWMutex
	cellDeg float64
	lngBins int
	cells   map[cellKey]map[uuid.UUID]struct{}
	points  map[uuid.UUID]Point
}

func NewIndex() *Index {
	return NewIndexWithCell(defaultCellDeg)
}

func NewIndexWithCell(cellDeg float64) *Index {
	if cellDeg <= 0 || cellDeg > 90 {
		cellDeg = defaultCellDeg
	}
	return &Index{
		cellDeg: cellDeg,
		lngBins: int(math.Ceil(360 / cellDeg)),
		cells:   make(map[cellKey]map[uuid.UUID]struct{}),
		points:  make(map[uuid.UUID]Point),
	}
}

// Upsert places id at p. An invalid point removes id from the index and
// returns false, so entities without a real location never match a query.
func (ix *Index) Upsert(id uuid.UUID, p Point) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.removeLocked(id)
	if !p.Valid() {
		return false
	}

	key := ix.cellOf(p)
	bucket, ok := ix.cells[key]
	if !ok {
		bucket = make(map[uuid.UUID]struct{})
		ix.cells[key] = bucket
	}
	bucket[id] = struct{}{}
	ix.points[id] = p
	return true
}

func (ix *Index) Remove(id uuid.UUID) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(id)
}

func (ix *Index) removeLocked(id uuid.UUID) {
	prev, ok := ix.points[id]
	if !ok {
		return
	}
	key := ix.cellOf(prev)
	if bucket, ok := ix.cells[key]; ok {
		delete(bucket, id)
		if len(bucket) == 0 {
			delete(ix.cells, key)
		}
	}
	delete(ix.points, id)
}

func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.points)
}

func (ix *Index) Location(id uuid.UUID) (Point, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	p, ok := ix.points[id]
	return p, ok
}

// Distance returns the great-circle distance from `from` to the indexed
// location of id. ok is false when id is not indexed or from is invalid.
func (ix *Index) Distance(id uuid.UUID, from Point) (float64, bool) {
	if !from.Valid() {
		return 0, false
	}
	p, ok := ix.Location(id)
	if !ok {
		return 0, false
	}
	return Haversine(from, p), true
}

// Query returns every entity within radiusKm of center, nearest first.
// Equal distances are ordered by ascending id.
func (ix *Index) Query(center Point, radiusKm float64) []Hit {
	if !center.Valid() || radiusKm <= 0 || math.IsNaN(radiusKm) {
		return nil
	}

	ix.mu.RLock()
	hits := make([]Hit, 0)
	ix.visitCells(center, radiusKm, func(bucket map[uuid.UUID]struct{}) {
		for id := range bucket {
			d := Haversine(center, ix.points[id])
			if d <= radiusKm {
				hits = append(hits, Hit{ID: id, DistanceKm: d})
			}
		}
	})
	ix.mu.RUnlock()

	SortHits(hits)
	return hits
}

func SortHits(hits []Hit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].DistanceKm != hits[j].DistanceKm {
			return hits[i].DistanceKm < hits[j].DistanceKm
		}
		return LessID(hits[i].ID, hits[j].ID)
	})
}

// LessID is the deterministic id order used for tie-breaks.
func LessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

func (ix *Index) visitCells(center Point, radiusKm float64, fn func(map[uuid.UUID]struct{})) {
	dLat := radiusKm / kmPerDegree
	minLat := math.Max(-90, center.Lat-dLat)
	maxLat := math.Min(90, center.Lat+dLat)

	// Longitude span widens with latitude; near the poles or for very large
	// radii every longitude bin is visited.
	fullLng := false
	var dLng float64
	cosLat := math.Min(math.Cos(toRadians(minLat)), math.Cos(toRadians(maxLat)))
	if cosLat < 1e-9 || maxLat >= 90 || minLat <= -90 {
		fullLng = true
	} else {
		dLng = dLat / cosLat
		if dLng >= 180 {
			fullLng = true
		}
	}

	latLo := ix.latBin(minLat)
	latHi := ix.latBin(maxLat)

	var lngLo, lngHi int
	if fullLng {
		lngLo, lngHi = 0, ix.lngBins-1
	} else {
		lngLo = int(math.Floor((center.Lng - dLng + 180) / ix.cellDeg))
		lngHi = int(math.Floor((center.Lng + dLng + 180) / ix.cellDeg))
		if lngHi-lngLo+1 >= ix.lngBins {
			lngLo, lngHi = 0, ix.lngBins-1
		}
	}

	for la := latLo; la <= latHi; la++ {
		for raw := lngLo; raw <= lngHi; raw++ {
			if bucket, ok := ix.cells[cellKey{lat: la, lng: ix.wrapLng(raw)}]; ok {
				fn(bucket)
			}
		}
	}
}

func (ix *Index) cellOf(p Point) cellKey {
	return cellKey{
		lat: ix.latBin(p.Lat),
		lng: ix.wrapLng(int(math.Floor((p.Lng + 180) / ix.cellDeg))),
	}
}

func (ix *Index) latBin(lat float64) int {
	return int(math.Floor((lat + 90) / ix.cellDeg))
}

func (ix *Index) wrapLng(bin int) int {
	return ((bin % ix.lngBins) + ix.lngBins) % ix.lngBins
}
