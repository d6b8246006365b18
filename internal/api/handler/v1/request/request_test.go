package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hubicito/hubicito-api/internal/domain"
)

func TestSignupRequest_Validate(t *testing.T) {
	tek := domain.Tek2
	bad := domain.TekxPosition("Tek7")

	valid := func() SignupRequest {
		return SignupRequest{
			Email:           "stu@hub.io",
			Password:        "abcdefg1",
			ConfirmPassword: "abcdefg1",
			FullName:        "Stu Dent",
			TekxPosition:    &tek,
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *SignupRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*SignupRequest) {}},
		{name: "bad email", mutate: func(r *SignupRequest) { r.Email = "nope" }, wantErr: true},
		{name: "password without digit", mutate: func(r *SignupRequest) { r.Password, r.ConfirmPassword = "abcdefgh", "abcdefgh" }, wantErr: true},
		{name: "short password", mutate: func(r *SignupRequest) { r.Password, r.ConfirmPassword = "abc1", "abc1" }, wantErr: true},
		{name: "mismatch", mutate: func(r *SignupRequest) { r.ConfirmPassword = "abcdefg2" }, wantErr: true},
		{name: "unknown position", mutate: func(r *SignupRequest) { r.TekxPosition = &bad }, wantErr: true},
		{name: "no position", mutate: func(r *SignupRequest) { r.TekxPosition = nil }},
		{name: "no name", mutate: func(r *SignupRequest) { r.FullName = "" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEventRequest_Validate(t *testing.T) {
	start := time.Date(2026, 11, 5, 18, 0, 0, 0, time.UTC)

	req := EventRequest{Title: "Go", Type: domain.EventWorkshop, StartTime: start, EndTime: start.Add(time.Hour)}
	assert.NoError(t, req.Validate())

	req.EndTime = start
	assert.ErrorIs(t, req.Validate(), errEndBeforeStart)

	req.EndTime = start.Add(time.Hour)
	req.Type = "party"
	assert.Error(t, req.Validate())
}

func TestProjectStatusRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ProjectStatusRequest{Status: domain.ProjectApproved}).Validate())
	assert.Error(t, (&ProjectStatusRequest{Status: "archived"}).Validate())
	assert.Error(t, (&ProjectStatusRequest{}).Validate())
}

func TestCreateAdminUserRequest_Validate(t *testing.T) {
	req := CreateAdminUserRequest{Email: "ad@hub.io", Password: "abcdefg1", FullName: "Ad", Role: domain.RoleAdmin}
	assert.NoError(t, req.Validate())

	req.Role = domain.RoleStudent
	assert.Error(t, req.Validate())
}
