package family

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Attach puts an unattached profile into g as a plain member.
func (s *Service) Attach(ctx context.Context, p *Profile, g *Group) (*Profile, error) {
	if err := s.repo.AttachProfile(ctx, p.ID, g.ID); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, alreadyInGroup(err)
		}

		return nil, fmt.Errorf("attaching profile: %w", err)
	}

	p.GroupID = &g.ID
	p.IsAdmin = false

	return p, nil
}

// Detach clears the group and admin flag together. Detaching an unattached
// profile succeeds without touching the store.
func (s *Service) Detach(ctx context.Context, p *Profile) (*Profile, error) {
	if p.GroupID == nil && !p.IsAdmin {
		return p, nil
	}

	if err := s.repo.DetachProfile(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("detaching profile: %w", err)
	}

	p.GroupID = nil
	p.IsAdmin = false

	return p, nil
}

func (s *Service) JoinByCode(ctx context.Context, userID uuid.UUID, code string) (*Group, error) {
	p, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !CanJoinOrCreate(p) {
		return nil, alreadyInGroup(ErrConflict)
	}

	if code == "" {
		return nil, &ValidationError{Field: "code", Message: "is required"}
	}

	g, err := s.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if _, err := s.Attach(ctx, p, g); err != nil {
		return nil, err
	}

	slog.Info("joined group", "group_id", g.ID, "profile_id", p.ID)

	return g, nil
}

func (s *Service) Leave(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	left := p.GroupID

	if _, err := s.Detach(ctx, p); err != nil {
		return nil, err
	}

	if left != nil {
		slog.Info("left group", "group_id", *left, "profile_id", p.ID)
	}

	return p, nil
}

// AddByUsername attaches another user's profile to the actor's group. Only the owner
// may add. A target that already belongs to any group is left untouched and
// reported with added == false.
func (s *Service) AddByUsername(ctx context.Context, actorID uuid.UUID, username string) (*Profile, bool, error) {
	g, _, err := s.requireOwner(ctx, actorID)
	if err != nil {
		return nil, false, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false, &ValidationError{Field: "username", Message: "Please provide a username."}
	}

	targetID, err := s.lookupUser(ctx, username)
	if err != nil {
		return nil, false, err
	}

	target, err := s.GetOrCreateProfile(ctx, targetID)
	if err != nil {
		return nil, false, err
	}

	if !CanJoinOrCreate(target) {
		return target, false, nil
	}

	if err := s.repo.AttachProfile(ctx, target.ID, g.ID); err != nil {
		if errors.Is(err, ErrConflict) {
			return target, false, nil
		}

		return nil, false, fmt.Errorf("attaching profile: %w", err)
	}

	target.GroupID = &g.ID
	target.IsAdmin = false

	slog.Info("member added", "group_id", g.ID, "profile_id", target.ID)

	return target, true, nil
}

// ListMembers returns everyone attached to g ordered by username.
func (s *Service) ListMembers(ctx context.Context, g *Group) ([]MemberView, error) {
	profiles, err := s.repo.ListMembers(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	views := make([]MemberView, len(profiles))
	for i, p := range profiles {
		views[i] = MemberView{
			ProfileID:   p.ID,
			Username:    p.Username,
			DisplayName: p.DisplayName(),
			Role:        EffectiveRole(g, p),
			Income:      p.Income,
			Expenses:    p.Expenses,
		}
	}

	return views, nil
}

// Members lists the caller's own group. A caller without a group gets a nil group
// and no members.
func (s *Service) Members(ctx context.Context, userID uuid.UUID) (*Group, []MemberView, error) {
	g, _, err := s.CurrentGroup(ctx, userID)
	if err != nil || g == nil {
		return nil, nil, err
	}

	views, err := s.ListMembers(ctx, g)
	if err != nil {
		return nil, nil, err
	}

	return g, views, nil
}

// ManagedMembers is the owner's view of the group they administer.
func (s *Service) ManagedMembers(ctx context.Context, actorID uuid.UUID) (*Group, []MemberView, error) {
	g, _, err := s.requireOwner(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}

	views, err := s.ListMembers(ctx, g)
	if err != nil {
		return nil, nil, err
	}

	return g, views, nil
}

// SetRole promotes or demotes a member of the owner's group. Targeting yourself or
// the owner changes nothing and is not an error.
func (s *Service) SetRole(ctx context.Context, actorID uuid.UUID, targetProfileID int64, promote bool) (*Profile, error) {
	g, _, err := s.requireOwner(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.memberOf(ctx, g, targetProfileID)
	if err != nil {
		return nil, err
	}

	if target.UserID == actorID || target.UserID == g.OwnerID {
		return target, nil
	}

	if err := s.repo.SetAdmin(ctx, target.ID, g.ID, promote); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: member %d", ErrNotFound, targetProfileID)
		}

		return nil, fmt.Errorf("setting role: %w", err)
	}

	target.IsAdmin = promote

	slog.Info("member role changed", "group_id", g.ID, "profile_id", target.ID, "admin", promote)

	return target, nil
}

// RemoveMember detaches a member from the owner's group. Removing yourself is a no-op.
func (s *Service) RemoveMember(ctx context.Context, actorID uuid.UUID, targetProfileID int64) (*Profile, error) {
	g, _, err := s.requireOwner(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.memberOf(ctx, g, targetProfileID)
	if err != nil {
		return nil, err
	}

	if target.UserID == actorID || target.UserID == g.OwnerID {
		return target, nil
	}

	if err := s.repo.RemoveFromGroup(ctx, target.ID, g.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: member %d", ErrNotFound, targetProfileID)
		}

		return nil, fmt.Errorf("removing member: %w", err)
	}

	target.GroupID = nil
	target.IsAdmin = false

	slog.Info("member removed", "group_id", g.ID, "profile_id", target.ID)

	return target, nil
}

func (s *Service) memberOf(ctx context.Context, g *Group, profileID int64) (*Profile, error) {
	p, err := s.repo.GetProfileInGroup(ctx, profileID, g.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: member %d", ErrNotFound, profileID)
		}

		return nil, fmt.Errorf("loading member: %w", err)
	}

	return p, nil
}
