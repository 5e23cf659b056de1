package schedule

import "time"

// ServiceCalendar is a trip's recurring-service definition: a weekday
// pattern valid over a date range, plus explicit exception dates that
// override the pattern in both directions.
type ServiceCalendar struct {
	ServiceID string
	Weekdays  [7]bool // indexed by time.Weekday
	Start     Date
	End       Date
	Added     map[Date]struct{}
	Removed   map[Date]struct{}
}

// NewServiceCalendar builds a calendar with empty exception sets.
func NewServiceCalendar(serviceID string, weekdays [7]bool, start, end Date) *ServiceCalendar {
	return &ServiceCalendar{
		ServiceID: serviceID,
		Weekdays:  weekdays,
		Start:     start,
		End:       end,
		Added:     map[Date]struct{}{},
		Removed:   map[Date]struct{}{},
	}
}

func (c *ServiceCalendar) AddException(d Date)    { c.Added[d] = struct{}{} }
func (c *ServiceCalendar) RemoveException(d Date) { c.Removed[d] = struct{}{} }

// ActiveOn reports whether the service runs on d. Exceptions always win over
// the weekday pattern; a removal beats an addition for the same date. The
// verdict is a pure function of the calendar and the date.
func (c *ServiceCalendar) ActiveOn(d Date) bool {
	if _, ok := c.Removed[d]; ok {
		return false
	}
	if _, ok := c.Added[d]; ok {
		return true
	}
	if d < c.Start || d > c.End {
		return false
	}
	return c.Weekdays[d.Weekday()]
}

// WeekdayPattern builds the [7]bool weekday set from a list of active days.
func WeekdayPattern(days ...time.Weekday) [7]bool {
	var w [7]bool
	for _, d := range days {
		w[d] = true
	}
	return w
}
