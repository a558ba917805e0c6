package models

// OpeningHours is one weekday row of a vendor's working hours.
// Day: 0 = Monday ... 6 = Sunday. Times are "HH:MM" in the vendor's timezone.
type OpeningHours struct {
	ID        int64  `json:"id,omitempty"`
	Day       int    `json:"day"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
	IsClosed  bool   `json:"is_closed"`
}

var weekdays = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (h OpeningHours) DayName() string {
	if h.Day < 0 || h.Day >= len(weekdays) {
		return ""
	}
	return weekdays[h.Day]
}
