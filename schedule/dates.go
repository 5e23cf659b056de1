package schedule

import "time"

// DateCandidate is a calendar date under test for governing a query instant,
// with the query's clock position re-expressed on that date's service clock.
// A query shortly after midnight yields a candidate on the previous calendar
// date with a time-of-day past 24:00:00, because trips scheduled past
// midnight belong to the previous date's service day.
type DateCandidate struct {
	ServiceDate Date
	TimeOfDay   TimeOfDay
}

// DateMapping binds a query instant to the service date whose schedule
// governs it. The mapping is what the per-mode models thread through their
// schedule lookups instead of doing ad hoc midnight arithmetic.
type DateMapping struct {
	Query       time.Time
	ServiceDate Date
	TimeOfDay   TimeOfDay
}

// At returns the absolute instant of tod on the mapping's service date,
// in the query's location.
func (m DateMapping) At(tod TimeOfDay) time.Time {
	return m.ServiceDate.At(tod, m.Query.Location())
}

// GoverningMappings enumerates the service dates that may govern the given
// instant, in a fixed deterministic order: first the previous calendar date
// (covering trips scheduled past 24:00:00), then the instant's own date.
// The same instant always yields the same mappings in the same order.
func GoverningMappings(at time.Time) []DateMapping {
	d := DateOf(at)
	midnight := d.Time(at.Location())
	tod := TimeOfDay(at.Sub(midnight) / time.Second)
	return []DateMapping{
		{Query: at, ServiceDate: d.AddDays(-1), TimeOfDay: tod + 24*3600},
		{Query: at, ServiceDate: d, TimeOfDay: tod},
	}
}
