package gbfs

import (
	"time"

	"github.com/google/uuid"
)

// StationStatus is one station's availability as reported by a GBFS
// station_status feed.
type StationStatus struct {
	StationID         string `json:"station_id"`
	VehiclesAvailable int    `json:"num_bikes_available"`
	DocksAvailable    int    `json:"num_docks_available"`
	LastReported      int64  `json:"last_reported"`
}

// Snapshot is a point-in-time capture of station availability. It is never
// mutated after construction; replacement happens by publishing a whole new
// snapshot through the Cache. The ID identifies which capture a reader is
// looking at.
type Snapshot struct {
	ID         uuid.UUID
	CapturedAt time.Time
	stations   map[string]StationStatus
}

// NewSnapshot builds an immutable snapshot from a batch of station records.
func NewSnapshot(capturedAt time.Time, stations []StationStatus) *Snapshot {
	m := make(map[string]StationStatus, len(stations))
	for _, s := range stations {
		m[s.StationID] = s
	}
	return &Snapshot{ID: uuid.New(), CapturedAt: capturedAt, stations: m}
}

// Station returns the availability record for a station id.
func (s *Snapshot) Station(id string) (StationStatus, bool) {
	st, ok := s.stations[id]
	return st, ok
}

// Stations returns the number of stations in the capture.
func (s *Snapshot) Stations() int { return len(s.stations) }

// Age is the elapsed time since the capture.
func (s *Snapshot) Age(now time.Time) time.Duration { return now.Sub(s.CapturedAt) }
