package store

import (
	"context"

	"github.com/AdamBeresnev/billiards-league/internal/admin"
	"github.com/jmoiron/sqlx"
)

type AdminStore struct {
	db *sqlx.DB
}

const (
	getAdminQuery    = "SELECT id, created_at FROM admin LIMIT 1"
	countAdminsQuery = "SELECT COUNT(*) FROM admin"
	createAdminQuery = "INSERT INTO admin (id) VALUES (?)"
	deleteAdminQuery = "DELETE FROM admin WHERE id = ?"
	clearAdminQuery  = "DELETE FROM admin"
)

func NewAdminStore(db *sqlx.DB) *AdminStore {
	return &AdminStore{db: db}
}

// GetAdmin returns sql.ErrNoRows when no admin is registered.
func (s *AdminStore) GetAdmin(ctx context.Context) (*admin.Admin, error) {
	var a admin.Admin
	err := s.db.GetContext(ctx, &a, getAdminQuery)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AdminStore) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, countAdminsQuery)
	return count, err
}

// CreateAdmin fails with ErrDuplicate when an admin already exists.
func (s *AdminStore) CreateAdmin(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, createAdminQuery, id)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *AdminStore) DeleteAdmin(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, deleteAdminQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ClearAdmins removes the admin whoever it is. Operator use only.
func (s *AdminStore) ClearAdmins(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, clearAdminQuery)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
