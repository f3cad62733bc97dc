// Package hospitals holds the static clinic location catalog. The visiting
// schedule is fixed configuration, not server data: the clinic operates the
// same chambers year round and closes every Friday.
package hospitals

import "time"

// Window is a bookable time window within a visiting day.
type Window struct {
	Start   string `json:"start"`   // "15:00" in 24-hour format
	End     string `json:"end"`     // "16:00"
	Display string `json:"display"` // "03:00 PM - 04:00 PM"
}

// Hospital describes a chamber where the doctor sees patients.
type Hospital struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Address     string         `json:"address"`
	Phone       string         `json:"phone"`
	Schedule    string         `json:"schedule"`
	VisitDays   []time.Weekday `json:"visit_days"`
	Windows     []Window       `json:"time_slots"`
	Specialties []string       `json:"specialties"`
	Features    []string       `json:"features"`
}

// VisitsOn reports whether the hospital holds visiting hours on the weekday.
func (h Hospital) VisitsOn(day time.Weekday) bool {
	for _, d := range h.VisitDays {
		if d == day {
			return true
		}
	}
	return false
}

// Saturday through Thursday. Friday is the clinic-wide closure day and is
// never listed.
var satToThu = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Saturday,
}

var catalog = []Hospital{
	{
		ID:       "moon",
		Name:     "Moon Hospital",
		Address:  "123 Main Street, City Center",
		Phone:    "+1 (555) 123-4567",
		Schedule: "03:00 PM to 05:00 PM (Except Friday)",
		VisitDays: satToThu,
		Windows: []Window{
			{Start: "15:00", End: "16:00", Display: "03:00 PM - 04:00 PM"},
			{Start: "16:00", End: "17:00", Display: "04:00 PM - 05:00 PM"},
		},
		Specialties: []string{"Eye Care", "General Consultation", "Emergency Care"},
		Features:    []string{"Free Parking", "Wheelchair Accessible", "Insurance Accepted"},
	},
	{
		ID:       "popular",
		Name:     "Popular Diagnostic Centre",
		Address:  "456 Health Avenue, Medical District",
		Phone:    "+1 (555) 987-6543",
		Schedule: "Morning: 08:00 AM to 09:00 AM, Evening: 05:00 PM to 08:00 PM",
		VisitDays: satToThu,
		Windows: []Window{
			{Start: "08:00", End: "09:00", Display: "08:00 AM - 09:00 AM"},
			{Start: "17:00", End: "18:00", Display: "05:00 PM - 06:00 PM"},
			{Start: "18:00", End: "19:00", Display: "06:00 PM - 07:00 PM"},
			{Start: "19:00", End: "20:00", Display: "07:00 PM - 08:00 PM"},
		},
		Specialties: []string{"Diagnostic Services", "Eye Examination", "Preventive Care"},
		Features:    []string{"Modern Equipment", "Quick Reports", "Online Results"},
	},
}

// All returns a copy of the hospital catalog.
func All() []Hospital {
	out := make([]Hospital, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks up a hospital by its identifier.
func ByID(id string) (Hospital, bool) {
	for _, h := range catalog {
		if h.ID == id {
			return h, true
		}
	}
	return Hospital{}, false
}

// ByName looks up a hospital by its display name.
func ByName(name string) (Hospital, bool) {
	for _, h := range catalog {
		if h.Name == name {
			return h, true
		}
	}
	return Hospital{}, false
}
