package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		name     string
		adminID  string
		hasAdmin bool
		subject  string
		expected State
	}{
		{name: "no admin, no session", expected: NoAdminExists},
		{name: "no admin, signed in", subject: "google:1", expected: NoAdminExists},
		{name: "admin, no session", adminID: "google:1", hasAdmin: true, expected: AdminExistsNoSession},
		{name: "admin, other subject", adminID: "google:1", hasAdmin: true, subject: "kakao:9", expected: AdminExistsSessionMismatch},
		{name: "admin, same subject", adminID: "google:1", hasAdmin: true, subject: "google:1", expected: AdminExistsSessionMatch},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Evaluate(tc.adminID, tc.hasAdmin, tc.subject))
		})
	}
}

func TestDecide(t *testing.T) {
	testCases := []struct {
		name        string
		state       State
		intent      bool
		expected    Decision
		expectedErr error
	}{
		{name: "first registration", state: NoAdminExists, intent: true, expected: DecisionRegister},
		{name: "login before any admin", state: NoAdminExists, intent: false, expectedErr: ErrNoAdmin},
		{name: "stranger logs in", state: AdminExistsSessionMismatch, intent: false, expectedErr: ErrNotAdmin},
		{name: "stranger tries to register", state: AdminExistsSessionMismatch, intent: true, expectedErr: ErrAdminExists},
		{name: "admin logs in", state: AdminExistsSessionMatch, intent: false, expected: DecisionGrant},
		{name: "admin re-registers", state: AdminExistsSessionMatch, intent: true, expected: DecisionGrant},
		{name: "no session", state: AdminExistsNoSession, intent: true, expectedErr: ErrNoSession},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := Decide(tc.state, tc.intent)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Zero(t, decision)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, decision)
		})
	}
}

func TestCanReset(t *testing.T) {
	assert.NoError(t, CanReset(AdminExistsSessionMatch))
	assert.ErrorIs(t, CanReset(AdminExistsNoSession), ErrNoSession)
	assert.ErrorIs(t, CanReset(AdminExistsSessionMismatch), ErrNotAdmin)
	assert.ErrorIs(t, CanReset(NoAdminExists), ErrNotAdmin)
}

func TestStateCanEdit(t *testing.T) {
	assert.True(t, AdminExistsSessionMatch.CanEdit())
	assert.False(t, AdminExistsSessionMismatch.CanEdit())
	assert.False(t, AdminExistsNoSession.CanEdit())
	assert.False(t, NoAdminExists.CanEdit())
}

func TestRejected(t *testing.T) {
	assert.True(t, Rejected(ErrNoAdmin))
	assert.True(t, Rejected(ErrNotAdmin))
	assert.True(t, Rejected(ErrAdminExists))
	assert.False(t, Rejected(ErrNoSession))
	assert.False(t, Rejected(nil))
}
