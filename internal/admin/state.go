// Package admin holds the bootstrap state machine that decides who the single
// league admin is. At most one admin identity exists at any time: the first
// authenticated user who explicitly asks to register while none exists becomes it,
// and only that identity may reset it.
package admin

import (
	"errors"
	"time"
)

type Admin struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

type State int

const (
	NoAdminExists State = iota
	AdminExistsNoSession
	AdminExistsSessionMismatch
	AdminExistsSessionMatch
)

func (s State) String() string {
	switch s {
	case NoAdminExists:
		return "no_admin"
	case AdminExistsNoSession:
		return "admin_no_session"
	case AdminExistsSessionMismatch:
		return "admin_session_mismatch"
	case AdminExistsSessionMatch:
		return "admin_session_match"
	default:
		return "unknown"
	}
}

// CanEdit reports whether create, edit and delete controls are exposed.
func (s State) CanEdit() bool {
	return s == AdminExistsSessionMatch
}

type Decision int

const (
	// DecisionRegister binds the caller's subject as the admin.
	DecisionRegister Decision = iota + 1
	// DecisionGrant accepts the caller as the existing admin.
	DecisionGrant
)

var (
	ErrNoAdmin     = errors.New("no admin is registered yet; use the admin registration link")
	ErrNotAdmin    = errors.New("this account is not the league admin")
	ErrAdminExists = errors.New("an admin is already registered")
	ErrNoSession   = errors.New("not signed in")
)

// Evaluate derives the state from the stored admin (if any) and the subject of the
// current session. An empty subject means there is no session.
func Evaluate(adminID string, hasAdmin bool, subject string) State {
	switch {
	case !hasAdmin:
		return NoAdminExists
	case subject == "":
		return AdminExistsNoSession
	case subject != adminID:
		return AdminExistsSessionMismatch
	default:
		return AdminExistsSessionMatch
	}
}

// Decide returns what to do with an identity that just authenticated, given the
// state evaluated for its subject and whether it carried the register intent.
// Any error means the identity is rejected and its session must be terminated.
func Decide(state State, registerIntent bool) (Decision, error) {
	switch state {
	case NoAdminExists:
		if registerIntent {
			return DecisionRegister, nil
		}
		return 0, ErrNoAdmin
	case AdminExistsSessionMismatch:
		if registerIntent {
			return 0, ErrAdminExists
		}
		return 0, ErrNotAdmin
	case AdminExistsSessionMatch:
		return DecisionGrant, nil
	default:
		return 0, ErrNoSession
	}
}

// CanReset reports whether the admin record may be deleted from state.
func CanReset(state State) error {
	switch state {
	case AdminExistsSessionMatch:
		return nil
	case AdminExistsNoSession:
		return ErrNoSession
	default:
		return ErrNotAdmin
	}
}

// Rejected reports whether err is one of the rejections that terminate the session.
func Rejected(err error) bool {
	return errors.Is(err, ErrNoAdmin) || errors.Is(err, ErrNotAdmin) || errors.Is(err, ErrAdminExists)
}
