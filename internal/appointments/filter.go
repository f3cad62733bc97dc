package appointments

import "strings"

// Wildcard is the filter value matching any status or hospital.
const Wildcard = "all"

// FilterOptions narrows an appointment list. All populated filters are ANDed.
type FilterOptions struct {
	Date       string // exact match on the appointment date; empty matches all
	SearchTerm string // case-insensitive substring of name, phone, or email
	Status     string // a Status value, or "all"
	HospitalID string // hospital id, or "all"
}

// Filter returns the appointments matching every populated option.
func Filter(appts []Appointment, opts FilterOptions) []Appointment {
	term := strings.ToLower(strings.TrimSpace(opts.SearchTerm))

	out := make([]Appointment, 0, len(appts))
	for _, a := range appts {
		if opts.Date != "" && a.Date != opts.Date {
			continue
		}
		if term != "" && !matchesTerm(a, term) {
			continue
		}
		if opts.Status != "" && opts.Status != Wildcard && string(a.Status) != opts.Status {
			continue
		}
		if opts.HospitalID != "" && opts.HospitalID != Wildcard && a.Hospital.ID != opts.HospitalID {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesTerm(a Appointment, term string) bool {
	if strings.Contains(strings.ToLower(a.Name), term) {
		return true
	}
	if strings.Contains(a.PhoneNumber, term) {
		return true
	}
	return a.Email != "" && strings.Contains(strings.ToLower(a.Email), term)
}

// StatusCounts is the per-status tally for a day, shown on the doctor
// dashboard strip.
type StatusCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	FollowUp  int `json:"follow_up"`
	NoShow    int `json:"no_show"`
}

// Summarize tallies the appointments on the given date by status.
func Summarize(appts []Appointment, date string) StatusCounts {
	var c StatusCounts
	for _, a := range appts {
		if a.Date != date {
			continue
		}
		c.Total++
		switch a.Status {
		case StatusPending:
			c.Pending++
		case StatusConfirmed:
			c.Confirmed++
		case StatusCompleted:
			c.Completed++
		case StatusCancelled:
			c.Cancelled++
		case StatusFollowUp:
			c.FollowUp++
		case StatusNoShow:
			c.NoShow++
		}
	}
	return c
}
