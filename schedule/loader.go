package schedule

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// LoadFromZip builds an Index from a GTFS-style zip archive. Only the files
// this layer needs are read: calendar.txt, calendar_dates.txt, trips.txt and
// stop_times.txt. A missing or corrupt archive propagates as an error; the
// caller gets no partially-built index.
func LoadFromZip(path string) (*Index, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule archive %q: %w", path, err)
	}
	defer zr.Close()

	ld := newZipLoader()
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		switch name {
		case "calendar.txt", "calendar_dates.txt", "trips.txt", "stop_times.txt":
			if err := ld.consumeCSV(f); err != nil {
				return nil, fmt.Errorf("read %s from %q: %w", name, path, err)
			}
		}
	}
	return ld.build()
}

type zipLoader struct {
	calendars   map[string]*ServiceCalendar
	tripService map[string]string
	stopTimes   map[string][]rawStopTime
}

type rawStopTime struct {
	stopID    string
	seq       int
	arrival   TimeOfDay
	departure TimeOfDay
}

func newZipLoader() *zipLoader {
	return &zipLoader{
		calendars:   map[string]*ServiceCalendar{},
		tripService: map[string]string{},
		stopTimes:   map[string][]rawStopTime{},
	}
}

func (l *zipLoader) consumeCSV(f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	switch strings.ToLower(f.Name) {
	case "calendar.txt":
		sID := idx("service_id")
		start := idx("start_date")
		end := idx("end_date")
		days := []int{idx("sunday"), idx("monday"), idx("tuesday"), idx("wednesday"), idx("thursday"), idx("friday"), idx("saturday")}
		if sID < 0 || start < 0 || end < 0 {
			return fmt.Errorf("calendar.txt missing required columns")
		}
		for i, row := range rec[1:] {
			if shortRow(row, sID, start, end) {
				return fmt.Errorf("calendar.txt row %d: %d fields, required columns missing", i+2, len(row))
			}
			startDate, err := ParseDate(row[start])
			if err != nil {
				return err
			}
			endDate, err := ParseDate(row[end])
			if err != nil {
				return err
			}
			var pattern [7]bool
			for wd, col := range days {
				if col >= 0 && col < len(row) && strings.TrimSpace(row[col]) == "1" {
					pattern[time.Weekday(wd)] = true
				}
			}
			// calendar_dates.txt may have arrived first and created this
			// service for its exceptions; keep those, fill in the pattern
			if c, ok := l.calendars[row[sID]]; ok {
				c.Weekdays = pattern
				c.Start = startDate
				c.End = endDate
			} else {
				l.calendars[row[sID]] = NewServiceCalendar(row[sID], pattern, startDate, endDate)
			}
		}
	case "calendar_dates.txt":
		sID := idx("service_id")
		dt := idx("date")
		exc := idx("exception_type")
		if sID < 0 || dt < 0 || exc < 0 {
			return fmt.Errorf("calendar_dates.txt missing required columns")
		}
		for i, row := range rec[1:] {
			if shortRow(row, sID, dt, exc) {
				return fmt.Errorf("calendar_dates.txt row %d: %d fields, required columns missing", i+2, len(row))
			}
			d, err := ParseDate(row[dt])
			if err != nil {
				return err
			}
			c, ok := l.calendars[row[sID]]
			if !ok {
				// service defined only through exceptions: empty pattern
				c = NewServiceCalendar(row[sID], [7]bool{}, 0, 0)
				l.calendars[row[sID]] = c
			}
			switch strings.TrimSpace(row[exc]) {
			case "1":
				c.AddException(d)
			case "2":
				c.RemoveException(d)
			default:
				return fmt.Errorf("service %q: unknown exception_type %q", row[sID], row[exc])
			}
		}
	case "trips.txt":
		tID := idx("trip_id")
		sID := idx("service_id")
		if tID < 0 || sID < 0 {
			return fmt.Errorf("trips.txt missing required columns")
		}
		for i, row := range rec[1:] {
			if shortRow(row, tID, sID) {
				return fmt.Errorf("trips.txt row %d: %d fields, required columns missing", i+2, len(row))
			}
			l.tripService[row[tID]] = row[sID]
		}
	case "stop_times.txt":
		tID := idx("trip_id")
		stID := idx("stop_id")
		sq := idx("stop_sequence")
		arr := idx("arrival_time")
		dep := idx("departure_time")
		if tID < 0 || stID < 0 || sq < 0 || arr < 0 || dep < 0 {
			return fmt.Errorf("stop_times.txt missing required columns")
		}
		for i, row := range rec[1:] {
			if shortRow(row, tID, stID, sq, arr, dep) {
				return fmt.Errorf("stop_times.txt row %d: %d fields, required columns missing", i+2, len(row))
			}
			seq, err := strconv.Atoi(strings.TrimSpace(row[sq]))
			if err != nil {
				return fmt.Errorf("trip %q: bad stop_sequence %q: %w", row[tID], row[sq], err)
			}
			arrival, err := ParseTimeOfDay(row[arr])
			if err != nil {
				return fmt.Errorf("trip %q: %w", row[tID], err)
			}
			departure, err := ParseTimeOfDay(row[dep])
			if err != nil {
				return fmt.Errorf("trip %q: %w", row[tID], err)
			}
			l.stopTimes[row[tID]] = append(l.stopTimes[row[tID]], rawStopTime{
				stopID:    row[stID],
				seq:       seq,
				arrival:   arrival,
				departure: departure,
			})
		}
	}
	return nil
}

// shortRow reports whether a CSV row is too short to hold every required
// column. FieldsPerRecord is disabled on the reader, so ragged rows reach
// here and must fail as feed errors, not index panics.
func shortRow(row []string, cols ...int) bool {
	for _, c := range cols {
		if c >= len(row) {
			return true
		}
	}
	return false
}

// build resolves trip -> service references and hands everything to NewIndex.
// calendar_dates.txt may arrive before or after calendar.txt in the archive,
// so resolution happens here rather than while streaming.
func (l *zipLoader) build() (*Index, error) {
	calendars := make([]*ServiceCalendar, 0, len(l.calendars))
	for _, c := range l.calendars {
		calendars = append(calendars, c)
	}
	var entries []Entry
	for tripID, times := range l.stopTimes {
		serviceID, ok := l.tripService[tripID]
		if !ok {
			return nil, fmt.Errorf("stop_times reference trip %q missing from trips.txt", tripID)
		}
		if _, ok := l.calendars[serviceID]; !ok {
			return nil, fmt.Errorf("trip %q references service %q with no calendar", tripID, serviceID)
		}
		sort.Slice(times, func(i, j int) bool { return times[i].seq < times[j].seq })
		for _, st := range times {
			entries = append(entries, Entry{
				TripID:    tripID,
				StopID:    st.stopID,
				Seq:       st.seq,
				Arrival:   st.arrival,
				Departure: st.departure,
				ServiceID: serviceID,
			})
		}
	}
	return NewIndex(calendars, entries)
}
