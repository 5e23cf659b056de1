package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Entry is one scheduled stop visit: a trip calling at a stop with its
// scheduled arrival and departure time-of-day and the calendar that decides
// on which dates the visit happens.
type Entry struct {
	TripID    string
	StopID    string
	Seq       int
	Arrival   TimeOfDay
	Departure TimeOfDay
	ServiceID string
}

// Index stores the static schedule in memory for fast lookups. It is built
// once and read concurrently without synchronization afterwards.
type Index struct {
	calendars   map[string]*ServiceCalendar
	stopEntries map[string][]Entry // sorted by Departure, then TripID
	tripEntries map[string][]Entry // sorted by Seq
	tripService map[string]string
}

// NewIndex assembles an index from typed calendar and stop-time records.
// Entries referencing an unknown calendar fail the build; each stop's
// entries are ordered by departure time-of-day.
func NewIndex(calendars []*ServiceCalendar, entries []Entry) (*Index, error) {
	ix := &Index{
		calendars:   map[string]*ServiceCalendar{},
		stopEntries: map[string][]Entry{},
		tripEntries: map[string][]Entry{},
		tripService: map[string]string{},
	}
	for _, c := range calendars {
		if c.ServiceID == "" {
			return nil, fmt.Errorf("calendar with empty service id")
		}
		ix.calendars[c.ServiceID] = c
	}
	for _, e := range entries {
		if _, ok := ix.calendars[e.ServiceID]; !ok {
			return nil, fmt.Errorf("entry for trip %q references unknown service id %q", e.TripID, e.ServiceID)
		}
		ix.stopEntries[e.StopID] = append(ix.stopEntries[e.StopID], e)
		ix.tripEntries[e.TripID] = append(ix.tripEntries[e.TripID], e)
		ix.tripService[e.TripID] = e.ServiceID
	}
	for stop, list := range ix.stopEntries {
		sort.Slice(list, func(i, j int) bool {
			if list[i].Departure != list[j].Departure {
				return list[i].Departure < list[j].Departure
			}
			return list[i].TripID < list[j].TripID
		})
		ix.stopEntries[stop] = list
	}
	for trip, list := range ix.tripEntries {
		sort.Slice(list, func(i, j int) bool { return list[i].Seq < list[j].Seq })
		ix.tripEntries[trip] = list
	}
	return ix, nil
}

// Empty reports whether the index holds no scheduled entries at all.
func (ix *Index) Empty() bool { return len(ix.stopEntries) == 0 }

// Stops returns the number of stops with at least one scheduled visit.
func (ix *Index) Stops() int { return len(ix.stopEntries) }

// Trips returns the number of distinct trips in the index.
func (ix *Index) Trips() int { return len(ix.tripEntries) }

// Calendar returns the service calendar for a service id.
func (ix *Index) Calendar(serviceID string) (*ServiceCalendar, bool) {
	c, ok := ix.calendars[serviceID]
	return c, ok
}

// ActiveOn reports whether a service id runs on the given date. Unknown
// service ids never run.
func (ix *Index) ActiveOn(serviceID string, d Date) bool {
	c, ok := ix.calendars[serviceID]
	return ok && c.ActiveOn(d)
}

// NextDeparture finds the earliest departure from the stop at or after the
// mapping's time-of-day plus the transfer buffer, restricted to entries
// whose calendar is active on the mapping's service date. The per-stop
// sequence is ordered by departure, so the scan starts at the binary-search
// lower bound and walks forward only past inactive services. Returns false
// when the governing date has no further service at the stop.
func (ix *Index) NextDeparture(stopID string, m DateMapping, buffer time.Duration) (Entry, bool) {
	list := ix.stopEntries[stopID]
	if len(list) == 0 {
		return Entry{}, false
	}
	earliest := m.TimeOfDay + TimeOfDay(buffer/time.Second)
	i := sort.Search(len(list), func(i int) bool { return list[i].Departure >= earliest })
	for ; i < len(list); i++ {
		if ix.ActiveOn(list[i].ServiceID, m.ServiceDate) {
			return list[i], true
		}
	}
	return Entry{}, false
}

// SegmentTime returns the scheduled in-vehicle time on the trip between
// two consecutive stops: arrival at toStop minus departure from fromStop.
// Returns false when the stops are not consecutive on the trip.
func (ix *Index) SegmentTime(tripID, fromStop, toStop string) (time.Duration, bool) {
	list := ix.tripEntries[tripID]
	for i := 0; i+1 < len(list); i++ {
		if list[i].StopID == fromStop && list[i+1].StopID == toStop {
			dt := list[i+1].Arrival - list[i].Departure
			if dt < 0 {
				return 0, false
			}
			return dt.Duration(), true
		}
	}
	return 0, false
}

// TripServiceID returns the service id a trip runs under.
func (ix *Index) TripServiceID(tripID string) (string, bool) {
	s, ok := ix.tripService[tripID]
	return s, ok
}

// StopDepartures returns the ordered departure sequence for a stop.
// The returned slice is shared and must not be modified.
func (ix *Index) StopDepartures(stopID string) []Entry {
	return ix.stopEntries[stopID]
}
