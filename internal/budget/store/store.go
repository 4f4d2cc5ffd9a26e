package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/hearth/internal/budget"
)

var _ budget.Repository = (*Store)(nil)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(s scanner) (*budget.Category, error) {
	var c budget.Category

	var limit decimal.NullDecimal

	if err := s.Scan(&c.ID, &c.GroupID, &c.Name, &limit); err != nil {
		return nil, err
	}

	if limit.Valid {
		c.BudgetLimit = &limit.Decimal
	}

	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context, groupID int64) ([]*budget.Category, error) {
	query := `
		SELECT id, group_id, name, budget_limit
		FROM categories
		WHERE group_id = $1
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*budget.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

func (s *Store) GetOrCreateCategory(ctx context.Context, groupID int64, name string) (*budget.Category, error) {
	query := `
		INSERT INTO categories (group_id, name)
		VALUES ($1, $2)
		ON CONFLICT (group_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, group_id, name, budget_limit
	`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, groupID, name))
	if err != nil {
		return nil, fmt.Errorf("upserting category: %w", err)
	}

	return c, nil
}

func (s *Store) SetCategoryLimit(ctx context.Context, groupID, id int64, limit *decimal.Decimal) error {
	var value decimal.NullDecimal
	if limit != nil {
		value = decimal.NewNullDecimal(*limit)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET budget_limit = $1 WHERE id = $2 AND group_id = $3`,
		value, id, groupID,
	)
	if err != nil {
		return fmt.Errorf("setting category limit: %w", err)
	}

	return expectOne(res)
}

func (s *Store) DeleteCategory(ctx context.Context, groupID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND group_id = $2`, id, groupID)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return expectOne(res)
}

func (s *Store) ListGoals(ctx context.Context, groupID int64) ([]*budget.Goal, error) {
	query := `
		SELECT id, group_id, name, target_amount, created_at
		FROM goals
		WHERE group_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*budget.Goal

	for rows.Next() {
		var g budget.Goal
		if err := rows.Scan(&g.ID, &g.GroupID, &g.Name, &g.TargetAmount, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}

	return goals, nil
}

func (s *Store) CreateGoal(ctx context.Context, goal *budget.Goal) error {
	query := `
		INSERT INTO goals (group_id, name, target_amount, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, goal.GroupID, goal.Name, goal.TargetAmount).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, groupID, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND group_id = $2`, id, groupID)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}

	if n == 0 {
		return budget.ErrNotFound
	}

	return nil
}
