package appointments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filterFixtures() []Appointment {
	return []Appointment{
		{ID: "a1", Name: "Jane Doe", PhoneNumber: "1234567890", Email: "jane@example.com",
			Hospital: HospitalRef{ID: "moon"}, Date: "2026-09-05", Status: StatusPending},
		{ID: "a2", Name: "Rahim Uddin", PhoneNumber: "01711112222",
			Hospital: HospitalRef{ID: "popular"}, Date: "2026-09-05", Status: StatusConfirmed},
		{ID: "a3", Name: "Karim Mia", PhoneNumber: "01855556666",
			Hospital: HospitalRef{ID: "moon"}, Date: "2026-09-06", Status: StatusPending},
		{ID: "a4", Name: "Jane Smith", PhoneNumber: "01999990000",
			Hospital: HospitalRef{ID: "popular"}, Date: "2026-09-06", Status: StatusCompleted},
	}
}

func ids(appts []Appointment) []string {
	out := make([]string, 0, len(appts))
	for _, a := range appts {
		out = append(out, a.ID)
	}
	return out
}

func TestFilterWildcardsReturnExactlyTheDate(t *testing.T) {
	got := Filter(filterFixtures(), FilterOptions{
		Date:       "2026-09-05",
		SearchTerm: "",
		Status:     Wildcard,
		HospitalID: Wildcard,
	})
	assert.ElementsMatch(t, []string{"a1", "a2"}, ids(got))
}

func TestFilterByStatus(t *testing.T) {
	got := Filter(filterFixtures(), FilterOptions{Status: string(StatusPending)})
	assert.ElementsMatch(t, []string{"a1", "a3"}, ids(got))
}

func TestFilterByHospital(t *testing.T) {
	got := Filter(filterFixtures(), FilterOptions{HospitalID: "popular"})
	assert.ElementsMatch(t, []string{"a2", "a4"}, ids(got))
}

func TestFilterSearchTermMatchesNamePhoneEmail(t *testing.T) {
	fixtures := filterFixtures()

	byName := Filter(fixtures, FilterOptions{SearchTerm: "jane"})
	assert.ElementsMatch(t, []string{"a1", "a4"}, ids(byName))

	byPhone := Filter(fixtures, FilterOptions{SearchTerm: "0171111"})
	assert.ElementsMatch(t, []string{"a2"}, ids(byPhone))

	byEmail := Filter(fixtures, FilterOptions{SearchTerm: "@example.com"})
	assert.ElementsMatch(t, []string{"a1"}, ids(byEmail))
}

func TestFilterCombinesAllOptions(t *testing.T) {
	got := Filter(filterFixtures(), FilterOptions{
		Date:       "2026-09-06",
		SearchTerm: "karim",
		Status:     string(StatusPending),
		HospitalID: "moon",
	})
	assert.ElementsMatch(t, []string{"a3"}, ids(got))
}

func TestFilterNoMatchReturnsEmptyNotNil(t *testing.T) {
	got := Filter(filterFixtures(), FilterOptions{Date: "2030-01-01"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSummarizeCountsOnlyGivenDate(t *testing.T) {
	c := Summarize(filterFixtures(), "2026-09-05")
	assert.Equal(t, 2, c.Total)
	assert.Equal(t, 1, c.Pending)
	assert.Equal(t, 1, c.Confirmed)
	assert.Equal(t, 0, c.Completed)
}
