package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/hearth/internal/family"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, user_id, username, income, expenses, nickname, group_id, is_admin
func scanProfile(s scanner) (*family.Profile, error) {
	var p family.Profile

	var groupID sql.NullInt64

	if err := s.Scan(
		&p.ID, &p.UserID, &p.Username, &p.Income, &p.Expenses, &p.Nickname, &groupID, &p.IsAdmin,
	); err != nil {
		return nil, err
	}

	if groupID.Valid {
		p.GroupID = &groupID.Int64
	}

	return &p, nil
}

const selectProfileColumns = `
	p.id, p.user_id, u.username, p.income, p.expenses, p.nickname, p.group_id, p.is_admin
`

// GetOrCreateProfile relies on the unique user_id constraint so concurrent first
// accesses converge on one row.
func (s *Store) GetOrCreateProfile(ctx context.Context, userID uuid.UUID) (*family.Profile, error) {
	query := `
		WITH upserted AS (
			INSERT INTO profiles (user_id)
			VALUES ($1)
			ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
			RETURNING *
		)
		SELECT ` + selectProfileColumns + `
		FROM upserted p
		JOIN users u ON u.id = p.user_id
	`

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", family.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("upserting profile: %w", err)
	}

	return p, nil
}

func (s *Store) GetProfileInGroup(ctx context.Context, profileID, groupID int64) (*family.Profile, error) {
	query := `SELECT ` + selectProfileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1 AND p.group_id = $2`

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, profileID, groupID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, family.ErrNotFound
		}

		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return p, nil
}

// UpdateProfile writes only the supplied columns and adds ExtraExpenses to expenses.
func (s *Store) UpdateProfile(ctx context.Context, profileID int64, upd family.ProfileUpdate) (*family.Profile, error) {
	query := `
		WITH updated AS (
			UPDATE profiles
			SET nickname = COALESCE($2, nickname),
				income = COALESCE($3, income),
				expenses = COALESCE($4, expenses) + $5
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + selectProfileColumns + `
		FROM updated p
		JOIN users u ON u.id = p.user_id
	`

	var nickname sql.NullString
	if upd.Nickname != nil {
		nickname = sql.NullString{String: *upd.Nickname, Valid: true}
	}

	p, err := scanProfile(s.db.QueryRowContext(ctx, query,
		profileID, nickname, nullDecimal(upd.Income), nullDecimal(upd.Expenses), upd.ExtraExpenses,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, family.ErrNotFound
		}

		return nil, fmt.Errorf("updating profile: %w", err)
	}

	return p, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(*d)
}

func (s *Store) ListMembers(ctx context.Context, groupID int64) ([]*family.Profile, error) {
	query := `SELECT ` + selectProfileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.group_id = $1
		ORDER BY u.username ASC`

	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var profiles []*family.Profile

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}

		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}

	return profiles, nil
}

func (s *Store) AttachProfile(ctx context.Context, profileID, groupID int64) error {
	return attachProfile(ctx, s.db, profileID, groupID)
}

func attachProfile(ctx context.Context, e execer, profileID, groupID int64) error {
	query := `
		UPDATE profiles
		SET group_id = $1, is_admin = FALSE
		WHERE id = $2 AND group_id IS NULL
	`

	res, err := e.ExecContext(ctx, query, groupID, profileID)
	if err != nil {
		return fmt.Errorf("attaching profile: %w", err)
	}

	return expectOne(res, family.ErrConflict)
}

func (s *Store) DetachProfile(ctx context.Context, profileID int64) error {
	query := `
		UPDATE profiles
		SET group_id = NULL, is_admin = FALSE
		WHERE id = $1
	`

	if _, err := s.db.ExecContext(ctx, query, profileID); err != nil {
		return fmt.Errorf("detaching profile: %w", err)
	}

	return nil
}

func (s *Store) RemoveFromGroup(ctx context.Context, profileID, groupID int64) error {
	query := `
		UPDATE profiles
		SET group_id = NULL, is_admin = FALSE
		WHERE id = $1 AND group_id = $2
	`

	res, err := s.db.ExecContext(ctx, query, profileID, groupID)
	if err != nil {
		return fmt.Errorf("removing from group: %w", err)
	}

	return expectOne(res, family.ErrNotFound)
}

func (s *Store) SetAdmin(ctx context.Context, profileID, groupID int64, isAdmin bool) error {
	query := `
		UPDATE profiles
		SET is_admin = $1
		WHERE id = $2 AND group_id = $3
	`

	res, err := s.db.ExecContext(ctx, query, isAdmin, profileID, groupID)
	if err != nil {
		return fmt.Errorf("setting admin: %w", err)
	}

	return expectOne(res, family.ErrNotFound)
}

func expectOne(res sql.Result, none error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if n == 0 {
		return none
	}

	return nil
}

const selectGroupColumns = `id, name, code, owner_id, created_at`

func scanGroup(s scanner) (*family.Group, error) {
	var g family.Group
	if err := s.Scan(&g.ID, &g.Name, &g.Code, &g.OwnerID, &g.CreatedAt); err != nil {
		return nil, err
	}

	return &g, nil
}

func (s *Store) getGroup(ctx context.Context, where string, arg any) (*family.Group, error) {
	query := `SELECT ` + selectGroupColumns + ` FROM family_groups WHERE ` + where

	g, err := scanGroup(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, family.ErrNotFound
		}

		return nil, fmt.Errorf("getting group: %w", err)
	}

	return g, nil
}

func (s *Store) GetGroup(ctx context.Context, id int64) (*family.Group, error) {
	return s.getGroup(ctx, `id = $1`, id)
}

func (s *Store) GetGroupByCode(ctx context.Context, code string) (*family.Group, error) {
	return s.getGroup(ctx, `code = $1`, code)
}

func (s *Store) FirstOwnedGroup(ctx context.Context, ownerID uuid.UUID) (*family.Group, error) {
	return s.getGroup(ctx, `owner_id = $1 ORDER BY id ASC LIMIT 1`, ownerID)
}

func (s *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM family_groups WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking code: %w", err)
	}

	return exists, nil
}

type createGroupTx struct {
	tx *sql.Tx
}

func (s *Store) BeginCreateGroup(ctx context.Context) (family.CreateGroupTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning create group tx: %w", err)
	}

	return &createGroupTx{tx: dbTx}, nil
}

func (c *createGroupTx) Commit() error   { return c.tx.Commit() }
func (c *createGroupTx) Rollback() error { return c.tx.Rollback() }

func (c *createGroupTx) CreateGroup(ctx context.Context, g *family.Group) error {
	query := `
		INSERT INTO family_groups (name, code, owner_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := c.tx.QueryRowContext(ctx, query, g.Name, g.Code, g.OwnerID).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return family.ErrCodeTaken
		}

		return fmt.Errorf("creating group: %w", err)
	}

	return nil
}

func (c *createGroupTx) AttachProfile(ctx context.Context, profileID, groupID int64) error {
	return attachProfile(ctx, c.tx, profileID, groupID)
}
