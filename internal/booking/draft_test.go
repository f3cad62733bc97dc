package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drganeshcs/clinic-booking-platform/internal/hospitals"
)

type fakeCreator struct {
	conf  *Confirmation
	err   error
	calls []CreateRequest
}

func (f *fakeCreator) CreateAppointment(ctx context.Context, req CreateRequest) (*Confirmation, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.conf, nil
}

func validDetails() PatientDetails {
	return PatientDetails{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "1234567890",
		Age:     "34",
		Gender:  "Female",
		Address: "12 Green Road, Dhaka",
	}
}

func TestValidateAgeBounds(t *testing.T) {
	cases := []struct {
		age string
		ok  bool
	}{
		{"0", false},
		{"1", true},
		{"120", true},
		{"121", false},
		{"", false},
		{"abc", false},
		{"34", true},
	}
	for _, tc := range cases {
		d := validDetails()
		d.Age = tc.age
		errs := d.Validate()
		if tc.ok {
			assert.NotContains(t, errs, "age", "age %q should be accepted", tc.age)
		} else {
			assert.Contains(t, errs, "age", "age %q should be rejected", tc.age)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	d := validDetails()
	d.Phone = "123"
	assert.Contains(t, d.Validate(), "phone")

	d.Phone = "1234567890"
	assert.NotContains(t, d.Validate(), "phone")

	// Formatting characters are stripped before counting digits.
	d.Phone = "+1 (234) 567-8901"
	assert.NotContains(t, d.Validate(), "phone")

	d.Phone = "1234567890123456"
	assert.Contains(t, d.Validate(), "phone")
}

func TestValidateEmailOptional(t *testing.T) {
	d := validDetails()
	d.Email = ""
	assert.NotContains(t, d.Validate(), "email")

	d.Email = "not-an-email"
	assert.Contains(t, d.Validate(), "email")
}

func TestValidateRequiredFields(t *testing.T) {
	d := validDetails()
	d.Name = "   "
	d.Address = ""
	d.Gender = "other"
	errs := d.Validate()
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "address")
	assert.Contains(t, errs, "gender")
}

func TestDraftStepByStep(t *testing.T) {
	moon, ok := hospitals.ByID("moon")
	require.True(t, ok)

	d := NewDraft()
	assert.False(t, d.Complete())

	d.SelectHospital(moon)
	d.SelectSlot("2026-09-05", "3:00 PM - 4:00 PM")
	assert.False(t, d.Complete(), "details still missing")

	errs := d.SubmitPatientDetails(validDetails())
	require.Nil(t, errs)
	assert.True(t, d.Complete())

	req, err := d.Request()
	require.NoError(t, err)
	assert.Equal(t, "Moon Hospital", req.Hospital)
	assert.Equal(t, "2026-09-05", req.Date)
	assert.Equal(t, "3:00 PM - 4:00 PM", req.Time)
	assert.Equal(t, "Jane Doe", req.PatientName)
}

func TestDraftChangingHospitalClearsSlot(t *testing.T) {
	moon, _ := hospitals.ByID("moon")
	popular, _ := hospitals.ByID("popular")

	d := NewDraft()
	d.SelectHospital(moon)
	d.SelectSlot("2026-09-05", "3:00 PM - 4:00 PM")
	d.SelectHospital(popular)

	_, err := d.Request()
	assert.ErrorIs(t, err, ErrNoSlot)
}

func TestDraftInvalidDetailsKeepPrevious(t *testing.T) {
	moon, _ := hospitals.ByID("moon")

	d := NewDraft()
	d.SelectHospital(moon)
	d.SelectSlot("2026-09-05", "3:00 PM - 4:00 PM")
	require.Nil(t, d.SubmitPatientDetails(validDetails()))

	bad := validDetails()
	bad.Age = "500"
	errs := d.SubmitPatientDetails(bad)
	assert.Contains(t, errs, "age")

	req, err := d.Request()
	require.NoError(t, err)
	assert.Equal(t, 34, req.PatientAge, "rejected details must not overwrite the draft")
}

func TestSubmitResetsDraftOnSuccess(t *testing.T) {
	moon, _ := hospitals.ByID("moon")
	creator := &fakeCreator{conf: &Confirmation{ID: "a1", ReferenceNumber: "REF-123", Status: "pending"}}
	svc := NewService(creator, nil, nil)

	d := NewDraft()
	d.SelectHospital(moon)
	d.SelectSlot("2026-09-05", "3:00 PM - 4:00 PM")
	require.Nil(t, d.SubmitPatientDetails(validDetails()))

	conf, err := svc.Submit(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "REF-123", conf.ReferenceNumber)
	assert.False(t, d.Complete(), "draft resets after a successful submission")
}

func TestSubmitKeepsDraftOnFailure(t *testing.T) {
	moon, _ := hospitals.ByID("moon")
	creator := &fakeCreator{err: errors.New("upstream unavailable")}
	svc := NewService(creator, nil, nil)

	d := NewDraft()
	d.SelectHospital(moon)
	d.SelectSlot("2026-09-05", "3:00 PM - 4:00 PM")
	require.Nil(t, d.SubmitPatientDetails(validDetails()))

	_, err := svc.Submit(context.Background(), d)
	require.Error(t, err)
	assert.True(t, d.Complete(), "failed submission must leave the draft intact")
}

func TestCreateValidatesBeforeUpstreamCall(t *testing.T) {
	creator := &fakeCreator{}
	svc := NewService(creator, nil, nil)

	_, err := svc.Create(context.Background(), CreateRequest{
		PatientName:    "Jane Doe",
		PatientPhone:   "123",
		PatientAge:     34,
		PatientGender:  "Female",
		PatientAddress: "12 Green Road",
		Hospital:       "Moon Hospital",
		Date:           "2026-09-05",
		Time:           "3:00 PM - 4:00 PM",
	})
	var fieldErrs ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "phone")
	assert.Empty(t, creator.calls, "invalid request must not reach the clinic API")
}
