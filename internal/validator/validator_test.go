package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ulp_backend/internal/services/dto"
)

func validSubmit() dto.SubmitLeadRequest {
	return dto.SubmitLeadRequest{
		Name:   "Priya Sharma",
		Email:  "priya@example.com",
		Phone:  "9876543210",
		Degree: "12th",
	}
}

func TestValidate_SubmitLeadRequest(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(validSubmit()))

	req := validSubmit()
	req.Degree = "phd"
	err := v.Validate(req)
	assert.Error(t, err)

	// Ошибки ключуются json-именами полей
	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	assert.Contains(t, vErr.Errors, "degree")
}

func TestValidate_EnumRules(t *testing.T) {
	v := New()

	cases := []struct {
		name  string
		req   interface{}
		valid bool
	}{
		{"статус done", dto.UpdateLeadRequest{Status: "done"}, true},
		{"пустой статус проходит omitempty", dto.UpdateLeadRequest{Note: "call back"}, true},
		{"неизвестный статус", dto.UpdateLeadRequest{Status: "archived"}, false},
		{"тип события click", dto.TrackEventRequest{VisitorID: "v", PageURL: "u", PageSlug: "s", EventType: "click"}, true},
		{"неизвестный тип события", dto.TrackEventRequest{VisitorID: "v", PageURL: "u", PageSlug: "s", EventType: "hover"}, false},
		{"тип лога user", dto.CreateLogRequest{Type: "user", Action: "phone_click"}, true},
		{"неизвестный тип лога", dto.CreateLogRequest{Type: "system", Action: "phone_click"}, false},
		{"кривой leadId", dto.CreateLogRequest{Type: "user", Action: "x", LeadID: "nope"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.req)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	v := New()

	err := v.Validate(dto.SubmitLeadRequest{})
	assert.Error(t, err)

	vErr, ok := err.(*ValidationError)
	assert.True(t, ok)
	for _, field := range []string{"name", "email", "phone", "degree"} {
		assert.Contains(t, vErr.Errors, field)
	}
}
