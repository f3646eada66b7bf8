package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AdamBeresnev/billiards-league/internal/admin"
	"github.com/AdamBeresnev/billiards-league/internal/events"
	"github.com/AdamBeresnev/billiards-league/internal/metrics"
	"github.com/AdamBeresnev/billiards-league/internal/store"
)

type AdminService struct {
	store     *store.AdminStore
	publisher Publisher
	metrics   metrics.Metrics
}

func NewAdminService(store *store.AdminStore, publisher Publisher, m metrics.Metrics) *AdminService {
	return &AdminService{store: store, publisher: publisher, metrics: m}
}

// State evaluates the admin state for subject. An empty subject means no session.
func (s *AdminService) State(ctx context.Context, subject string) (admin.State, error) {
	a, err := s.store.GetAdmin(ctx)
	if isNotFound(err) {
		return admin.Evaluate("", false, subject), nil
	}
	if err != nil {
		return admin.NoAdminExists, storeFailure("get admin", err)
	}
	return admin.Evaluate(a.ID, true, subject), nil
}

// Authenticate runs the bootstrap decision for a subject that just signed in.
// On any rejection the caller must terminate the session.
func (s *AdminService) Authenticate(ctx context.Context, subject string, registerIntent bool) (admin.State, error) {
	state, err := s.State(ctx, subject)
	if err != nil {
		return state, err
	}

	decision, err := admin.Decide(state, registerIntent)
	if err != nil {
		s.metrics.IncAuthOutcome("rejected")
		slog.Info("Identity rejected", "state", state.String(), "register_intent", registerIntent, "reason", err)
		return state, err
	}

	if decision == admin.DecisionRegister {
		err := s.store.CreateAdmin(ctx, subject)
		if errors.Is(err, store.ErrDuplicate) {
			// someone else registered between the read and the insert
			s.metrics.IncAuthOutcome("rejected")
			return admin.AdminExistsSessionMismatch, admin.ErrAdminExists
		}
		if err != nil {
			return state, storeFailure("create admin", err)
		}
		s.metrics.IncAuthOutcome("register")
		slog.Info("Admin registered", "subject", subject)
		s.publish(ctx, events.AdminChanged{AdminID: subject, Registered: true})
		return admin.AdminExistsSessionMatch, nil
	}

	s.metrics.IncAuthOutcome("grant")
	return admin.AdminExistsSessionMatch, nil
}

// Reset deletes the admin record. Only the current admin may do it; the caller
// must terminate the session afterwards.
func (s *AdminService) Reset(ctx context.Context, subject string) error {
	state, err := s.State(ctx, subject)
	if err != nil {
		return err
	}
	if err := admin.CanReset(state); err != nil {
		return err
	}

	deleted, err := s.store.DeleteAdmin(ctx, subject)
	if err != nil {
		return storeFailure("delete admin", err)
	}
	if !deleted {
		return admin.ErrNotAdmin
	}

	slog.Info("Admin reset", "subject", subject)
	s.publish(ctx, events.AdminChanged{AdminID: subject, Registered: false})
	return nil
}

// ForceReset removes the admin whoever it is. Operator use only.
func (s *AdminService) ForceReset(ctx context.Context) (bool, error) {
	n, err := s.store.ClearAdmins(ctx)
	if err != nil {
		return false, storeFailure("clear admin", err)
	}
	if n > 0 {
		s.publish(ctx, events.AdminChanged{Registered: false})
	}
	return n > 0, nil
}

func (s *AdminService) publish(ctx context.Context, payload events.AdminChanged) {
	if err := s.publisher.Publish(ctx, events.TopicAdminChanged, payload); err != nil {
		slog.Error("Failed to publish event", "topic", events.TopicAdminChanged, "error", err)
	}
}
