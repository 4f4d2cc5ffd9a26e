package family_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/hearth/internal/family"
	"github.com/MrJamesThe3rd/hearth/internal/identity"
)

const groupID int64 = 10

var (
	ownerID = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	bobID   = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	carolID = uuid.MustParse("00000000-0000-0000-0000-00000000000c")
)

func testGroup() *family.Group {
	return &family.Group{ID: groupID, Name: "Fam", Code: "F123", OwnerID: ownerID}
}

func ownerProfile() *family.Profile {
	return &family.Profile{ID: 1, UserID: ownerID, Username: "anna", GroupID: new(groupID)}
}

func bobProfile(attached, admin bool) *family.Profile {
	p := &family.Profile{ID: 2, UserID: bobID, Username: "bob", IsAdmin: admin}
	if attached {
		p.GroupID = new(groupID)
	}

	return p
}

func carolProfile(attached bool) *family.Profile {
	p := &family.Profile{ID: 3, UserID: carolID, Username: "carol", Nickname: "Caz"}
	if attached {
		p.GroupID = new(groupID)
	}

	return p
}

type fixture struct {
	repo *family.MockRepository
	dir  *family.MockDirectory
	svc  *family.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := family.NewMockRepository(ctrl)
	dir := family.NewMockDirectory(ctrl)

	return &fixture{repo: repo, dir: dir, svc: family.NewService(repo, dir)}
}

// expectCurrent wires the profile lookup and, when attached, the group lookup.
func (f *fixture) expectCurrent(p *family.Profile) {
	f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), p.UserID).Return(p, nil)

	if p.GroupID != nil {
		f.repo.EXPECT().GetGroup(gomock.Any(), *p.GroupID).Return(testGroup(), nil)
	}
}

func TestService_GetOrCreateProfile_Idempotent(t *testing.T) {
	f := newFixture(t)
	stored := &family.Profile{ID: 5, UserID: bobID, Username: "bob"}

	f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), bobID).Return(stored, nil).Times(2)

	first, err := f.svc.GetOrCreateProfile(context.Background(), bobID)
	require.NoError(t, err)

	second, err := f.svc.GetOrCreateProfile(context.Background(), bobID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.Income.IsZero())
	assert.True(t, first.Expenses.IsZero())
}

func TestService_GetOrCreateProfile_Error(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), bobID).Return(nil, errors.New("db error"))

	got, err := f.svc.GetOrCreateProfile(context.Background(), bobID)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestService_Detach(t *testing.T) {
	for _, admin := range []bool{true, false} {
		t.Run(map[bool]string{true: "Admin", false: "Member"}[admin], func(t *testing.T) {
			f := newFixture(t)
			p := bobProfile(true, admin)

			f.repo.EXPECT().DetachProfile(gomock.Any(), p.ID).Return(nil)

			got, err := f.svc.Detach(context.Background(), p)
			require.NoError(t, err)
			assert.Nil(t, got.GroupID)
			assert.False(t, got.IsAdmin)
		})
	}

	t.Run("AlreadyDetached", func(t *testing.T) {
		f := newFixture(t)

		got, err := f.svc.Detach(context.Background(), bobProfile(false, false))
		require.NoError(t, err)
		assert.Nil(t, got.GroupID)
	})
}

func TestService_Attach(t *testing.T) {
	t.Run("ClearsStaleAdmin", func(t *testing.T) {
		f := newFixture(t)
		p := bobProfile(false, true)

		f.repo.EXPECT().AttachProfile(gomock.Any(), p.ID, groupID).Return(nil)

		got, err := f.svc.Attach(context.Background(), p, testGroup())
		require.NoError(t, err)
		require.NotNil(t, got.GroupID)
		assert.Equal(t, groupID, *got.GroupID)
		assert.False(t, got.IsAdmin)
	})

	t.Run("ConcurrentAttach", func(t *testing.T) {
		f := newFixture(t)
		p := bobProfile(false, false)

		f.repo.EXPECT().AttachProfile(gomock.Any(), p.ID, groupID).Return(family.ErrConflict)

		_, err := f.svc.Attach(context.Background(), p, testGroup())
		assert.ErrorIs(t, err, family.ErrValidation)
		assert.ErrorIs(t, err, family.ErrConflict)
		assert.Nil(t, p.GroupID)
	})
}

func TestService_JoinByCode_AppearsInOwnerList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), bobID).Return(bobProfile(false, false), nil)
	f.repo.EXPECT().GetGroupByCode(gomock.Any(), "F123").Return(testGroup(), nil)
	f.repo.EXPECT().AttachProfile(gomock.Any(), int64(2), groupID).Return(nil)

	g, err := f.svc.JoinByCode(ctx, bobID, "F123")
	require.NoError(t, err)
	assert.Equal(t, groupID, g.ID)

	f.expectCurrent(ownerProfile())
	f.repo.EXPECT().ListMembers(gomock.Any(), groupID).Return([]*family.Profile{ownerProfile(), bobProfile(true, false)}, nil)

	_, members, err := f.svc.Members(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, members, 2)

	assert.Equal(t, family.RoleOwner, members[0].Role)
	assert.Equal(t, "bob", members[1].Username)
	assert.Equal(t, "bob", members[1].DisplayName)
	assert.Equal(t, family.RoleMember, members[1].Role)
}

func TestService_JoinByCode_Rejections(t *testing.T) {
	type testCase struct {
		name      string
		code      string
		profile   *family.Profile
		setupMock func(m *family.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "AlreadyInGroup",
			code:    "OTHER1",
			profile: ownerProfile(),
			wantErr: family.ErrConflict,
		},
		{
			name:    "EmptyCode",
			code:    "",
			profile: bobProfile(false, false),
			wantErr: family.ErrValidation,
		},
		{
			name:    "UnknownCode",
			code:    "NOPE",
			profile: bobProfile(false, false),
			setupMock: func(m *family.MockRepository) {
				m.EXPECT().GetGroupByCode(gomock.Any(), "NOPE").Return(nil, family.ErrNotFound)
			},
			wantErr: family.ErrNotFound,
		},
		{
			name:    "CaseSensitive",
			code:    "f123",
			profile: bobProfile(false, false),
			setupMock: func(m *family.MockRepository) {
				m.EXPECT().GetGroupByCode(gomock.Any(), "f123").Return(nil, family.ErrNotFound)
			},
			wantErr: family.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), tt.profile.UserID).Return(tt.profile, nil)

			if tt.setupMock != nil {
				tt.setupMock(f.repo)
			}

			before := tt.profile.GroupID

			g, err := f.svc.JoinByCode(context.Background(), tt.profile.UserID, tt.code)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, g)
			assert.Equal(t, before, tt.profile.GroupID)
		})
	}
}

func TestService_JoinByCode_AlreadyInGroupIsValidationError(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), ownerID).Return(ownerProfile(), nil)

	_, err := f.svc.JoinByCode(context.Background(), ownerID, "OTHER1")

	var vErr *family.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, vErr.Field)
}

func TestService_PromoteGrantsManagement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.expectCurrent(ownerProfile())
	f.repo.EXPECT().GetProfileInGroup(gomock.Any(), int64(2), groupID).Return(bobProfile(true, false), nil)
	f.repo.EXPECT().SetAdmin(gomock.Any(), int64(2), groupID, true).Return(nil)

	bob, err := f.svc.SetRole(ctx, ownerID, 2, true)
	require.NoError(t, err)
	assert.True(t, bob.IsAdmin)
	assert.Equal(t, family.RoleAdmin, family.EffectiveRole(testGroup(), bob))

	f.expectCurrent(bobProfile(true, true))

	g, _, err := f.svc.RequireManager(ctx, bobID)
	require.NoError(t, err)
	assert.Equal(t, groupID, g.ID)

	f.expectCurrent(carolProfile(true))

	_, _, err = f.svc.RequireManager(ctx, carolID)
	assert.ErrorIs(t, err, family.ErrForbidden)
}

func TestService_RequireManager_NoGroup(t *testing.T) {
	f := newFixture(t)
	f.expectCurrent(carolProfile(false))

	_, _, err := f.svc.RequireManager(context.Background(), carolID)
	assert.ErrorIs(t, err, family.ErrForbidden)
}

func TestService_SetRole(t *testing.T) {
	type testCase struct {
		name      string
		actor     *family.Profile
		target    int64
		promote   bool
		setupMock func(m *family.MockRepository)
		wantErr   error
		wantAdmin bool
	}

	tests := []testCase{
		{
			name:    "Demote",
			actor:   ownerProfile(),
			target:  2,
			promote: false,
			setupMock: func(m *family.MockRepository) {
				m.EXPECT().GetProfileInGroup(gomock.Any(), int64(2), groupID).Return(bobProfile(true, true), nil)
				m.EXPECT().SetAdmin(gomock.Any(), int64(2), groupID, false).Return(nil)
			},
			wantAdmin: false,
		},
		{
			name:    "PromoteSelfIsNoop",
			actor:   ownerProfile(),
			target:  1,
			promote: true,
			setupMock: func(m *family.MockRepository) {
				m.EXPECT().GetProfileInGroup(gomock.Any(), int64(1), groupID).Return(ownerProfile(), nil)
			},
			wantAdmin: false,
		},
		{
			name:    "TargetOutsideGroup",
			actor:   ownerProfile(),
			target:  99,
			promote: true,
			setupMock: func(m *family.MockRepository) {
				m.EXPECT().GetProfileInGroup(gomock.Any(), int64(99), groupID).Return(nil, family.ErrNotFound)
			},
			wantErr: family.ErrNotFound,
		},
		{
			name:    "TargetLeftMeanwhile",
			actor:   ownerProfile(),
			target:  2,
			promote: true,
			setupMock: func(m *family.MockRepository) {
				m.EXPECT().GetProfileInGroup(gomock.Any(), int64(2), groupID).Return(bobProfile(true, false), nil)
				m.EXPECT().SetAdmin(gomock.Any(), int64(2), groupID, true).Return(family.ErrNotFound)
			},
			wantErr: family.ErrNotFound,
		},
		{
			name:    "AdminCannotPromote",
			actor:   bobProfile(true, true),
			target:  3,
			promote: true,
			wantErr: family.ErrForbidden,
		},
		{
			name:    "MemberCannotDemoteOwner",
			actor:   carolProfile(true),
			target:  1,
			promote: false,
			wantErr: family.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.expectCurrent(tt.actor)

			if tt.setupMock != nil {
				tt.setupMock(f.repo)
			}

			got, err := f.svc.SetRole(context.Background(), tt.actor.UserID, tt.target, tt.promote)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAdmin, got.IsAdmin)
		})
	}
}

func TestService_RemoveMember(t *testing.T) {
	t.Run("OwnerRemovesAdmin", func(t *testing.T) {
		f := newFixture(t)
		f.expectCurrent(ownerProfile())
		f.repo.EXPECT().GetProfileInGroup(gomock.Any(), int64(2), groupID).Return(bobProfile(true, true), nil)
		f.repo.EXPECT().RemoveFromGroup(gomock.Any(), int64(2), groupID).Return(nil)

		got, err := f.svc.RemoveMember(context.Background(), ownerID, 2)
		require.NoError(t, err)
		assert.Nil(t, got.GroupID)
		assert.False(t, got.IsAdmin)

		f.expectCurrent(ownerProfile())
		f.repo.EXPECT().ListMembers(gomock.Any(), groupID).Return([]*family.Profile{ownerProfile()}, nil)

		_, members, err := f.svc.Members(context.Background(), ownerID)
		require.NoError(t, err)

		for _, m := range members {
			assert.NotEqual(t, "bob", m.Username)
		}
	})

	t.Run("OwnerRemovingSelfIsNoop", func(t *testing.T) {
		f := newFixture(t)
		f.expectCurrent(ownerProfile())
		f.repo.EXPECT().GetProfileInGroup(gomock.Any(), int64(1), groupID).Return(ownerProfile(), nil)

		got, err := f.svc.RemoveMember(context.Background(), ownerID, 1)
		require.NoError(t, err)
		require.NotNil(t, got.GroupID)
		assert.Equal(t, groupID, *got.GroupID)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		f := newFixture(t)
		f.expectCurrent(bobProfile(true, true))

		got, err := f.svc.RemoveMember(context.Background(), bobID, 3)
		assert.ErrorIs(t, err, family.ErrForbidden)
		assert.Nil(t, got)
	})

	t.Run("ForeignProfile", func(t *testing.T) {
		f := newFixture(t)
		f.expectCurrent(ownerProfile())
		f.repo.EXPECT().GetProfileInGroup(gomock.Any(), int64(42), groupID).Return(nil, family.ErrNotFound)

		_, err := f.svc.RemoveMember(context.Background(), ownerID, 42)
		assert.ErrorIs(t, err, family.ErrNotFound)
	})
}

func TestService_ManagedMembers_OwnerWhoLeft(t *testing.T) {
	f := newFixture(t)
	left := ownerProfile()
	left.GroupID = nil

	f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), ownerID).Return(left, nil)
	f.repo.EXPECT().FirstOwnedGroup(gomock.Any(), ownerID).Return(testGroup(), nil)
	f.repo.EXPECT().ListMembers(gomock.Any(), groupID).Return([]*family.Profile{bobProfile(true, false)}, nil)

	g, members, err := f.svc.ManagedMembers(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, groupID, g.ID)
	require.Len(t, members, 1)
	assert.Equal(t, family.RoleMember, members[0].Role)
}

func TestService_ManagedMembers_NothingOwned(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), carolID).Return(carolProfile(false), nil)
	f.repo.EXPECT().FirstOwnedGroup(gomock.Any(), carolID).Return(nil, family.ErrNotFound)

	_, _, err := f.svc.ManagedMembers(context.Background(), carolID)
	assert.ErrorIs(t, err, family.ErrForbidden)
}

func TestService_AddByUsername(t *testing.T) {
	type testCase struct {
		name      string
		actor     *family.Profile
		username  string
		setupMock func(f *fixture)
		wantErr   error
		anyErr    bool
		wantAdded bool
	}

	tests := []testCase{
		{
			name:     "Success",
			actor:    ownerProfile(),
			username: "  carol ",
			setupMock: func(f *fixture) {
				f.dir.EXPECT().LookupUsername(gomock.Any(), "carol").Return(carolID, nil)
				f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), carolID).Return(carolProfile(false), nil)
				f.repo.EXPECT().AttachProfile(gomock.Any(), int64(3), groupID).Return(nil)
			},
			wantAdded: true,
		},
		{
			name:     "UnknownUser",
			actor:    ownerProfile(),
			username: "nobody",
			setupMock: func(f *fixture) {
				f.dir.EXPECT().LookupUsername(gomock.Any(), "nobody").Return(uuid.Nil, identity.ErrNotFound)
			},
			wantErr: family.ErrNotFound,
		},
		{
			name:     "DirectoryFailure",
			actor:    ownerProfile(),
			username: "carol",
			setupMock: func(f *fixture) {
				f.dir.EXPECT().LookupUsername(gomock.Any(), "carol").Return(uuid.Nil, errors.New("timeout"))
			},
			anyErr: true,
		},
		{
			name:     "TargetAlreadyInGroupIsSilent",
			actor:    ownerProfile(),
			username: "carol",
			setupMock: func(f *fixture) {
				other := carolProfile(false)
				other.GroupID = new(int64(99))

				f.dir.EXPECT().LookupUsername(gomock.Any(), "carol").Return(carolID, nil)
				f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), carolID).Return(other, nil)
			},
			wantAdded: false,
		},
		{
			name:     "RaceWithJoinIsSilent",
			actor:    ownerProfile(),
			username: "carol",
			setupMock: func(f *fixture) {
				f.dir.EXPECT().LookupUsername(gomock.Any(), "carol").Return(carolID, nil)
				f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), carolID).Return(carolProfile(false), nil)
				f.repo.EXPECT().AttachProfile(gomock.Any(), int64(3), groupID).Return(family.ErrConflict)
			},
			wantAdded: false,
		},
		{
			name:     "EmptyUsername",
			actor:    ownerProfile(),
			username: "   ",
			wantErr:  family.ErrValidation,
		},
		{
			name:     "NonOwner",
			actor:    bobProfile(true, true),
			username: "carol",
			wantErr:  family.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.expectCurrent(tt.actor)

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			got, added, err := f.svc.AddByUsername(context.Background(), tt.actor.UserID, tt.username)

			if tt.wantErr != nil || tt.anyErr {
				require.Error(t, err)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				if !errors.Is(tt.wantErr, family.ErrValidation) {
					assert.NotErrorIs(t, err, family.ErrValidation)
				}

				assert.False(t, added)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAdded, added)
			assert.NotNil(t, got)
		})
	}
}

func TestService_CreateGroup(t *testing.T) {
	unattached := func() *family.Profile {
		p := ownerProfile()
		p.GroupID = nil

		return p
	}

	type testCase struct {
		name      string
		groupName string
		code      string
		profile   *family.Profile
		setupMock func(f *fixture, ctrl *gomock.Controller)
		wantErr   error
		wantField string
	}

	withTx := func(f *fixture, ctrl *gomock.Controller, configure func(tx *family.MockCreateGroupTx)) {
		tx := family.NewMockCreateGroupTx(ctrl)
		f.repo.EXPECT().BeginCreateGroup(gomock.Any()).Return(tx, nil)
		configure(tx)
		tx.EXPECT().Rollback().Return(nil)
	}

	tests := []testCase{
		{
			name:      "Success",
			groupName: " Fam ",
			code:      "F123",
			profile:   unattached(),
			setupMock: func(f *fixture, ctrl *gomock.Controller) {
				f.repo.EXPECT().CodeExists(gomock.Any(), "F123").Return(false, nil)
				withTx(f, ctrl, func(tx *family.MockCreateGroupTx) {
					tx.EXPECT().
						CreateGroup(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, g *family.Group) error {
							assert.Equal(t, "Fam", g.Name)
							assert.Equal(t, "F123", g.Code)
							assert.Equal(t, ownerID, g.OwnerID)
							g.ID = groupID
							return nil
						})
					tx.EXPECT().AttachProfile(gomock.Any(), int64(1), groupID).Return(nil)
					tx.EXPECT().Commit().Return(nil)
				})
			},
		},
		{
			name:      "GeneratedCode",
			groupName: "Fam",
			profile:   unattached(),
			setupMock: func(f *fixture, ctrl *gomock.Controller) {
				f.repo.EXPECT().CodeExists(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().CodeExists(gomock.Any(), gomock.Any()).Return(false, nil)
				withTx(f, ctrl, func(tx *family.MockCreateGroupTx) {
					tx.EXPECT().
						CreateGroup(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, g *family.Group) error {
							assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), g.Code)
							g.ID = groupID
							return nil
						})
					tx.EXPECT().AttachProfile(gomock.Any(), int64(1), groupID).Return(nil)
					tx.EXPECT().Commit().Return(nil)
				})
			},
		},
		{
			name:      "CodeInUse",
			groupName: "Fam",
			code:      "F123",
			profile:   unattached(),
			setupMock: func(f *fixture, _ *gomock.Controller) {
				f.repo.EXPECT().CodeExists(gomock.Any(), "F123").Return(true, nil)
			},
			wantErr:   family.ErrCodeTaken,
			wantField: "code",
		},
		{
			name:      "CodeTakenConcurrently",
			groupName: "Fam",
			code:      "F123",
			profile:   unattached(),
			setupMock: func(f *fixture, ctrl *gomock.Controller) {
				f.repo.EXPECT().CodeExists(gomock.Any(), "F123").Return(false, nil)
				withTx(f, ctrl, func(tx *family.MockCreateGroupTx) {
					tx.EXPECT().CreateGroup(gomock.Any(), gomock.Any()).Return(family.ErrCodeTaken)
				})
			},
			wantErr:   family.ErrCodeTaken,
			wantField: "code",
		},
		{
			name:      "InvalidCode",
			groupName: "Fam",
			code:      "F 123",
			profile:   unattached(),
			wantErr:   family.ErrValidation,
			wantField: "code",
		},
		{
			name:      "MissingName",
			groupName: "  ",
			code:      "F123",
			wantErr:   family.ErrValidation,
			wantField: "name",
		},
		{
			name:      "AlreadyInGroup",
			groupName: "Second",
			code:      "S456",
			profile:   ownerProfile(),
			wantErr:   family.ErrConflict,
		},
		{
			name:      "JoinedConcurrently",
			groupName: "Fam",
			code:      "F123",
			profile:   unattached(),
			setupMock: func(f *fixture, ctrl *gomock.Controller) {
				f.repo.EXPECT().CodeExists(gomock.Any(), "F123").Return(false, nil)
				withTx(f, ctrl, func(tx *family.MockCreateGroupTx) {
					tx.EXPECT().
						CreateGroup(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, g *family.Group) error {
							g.ID = groupID
							return nil
						})
					tx.EXPECT().AttachProfile(gomock.Any(), int64(1), groupID).Return(family.ErrConflict)
				})
			},
			wantErr: family.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := family.NewMockRepository(ctrl)
			f := &fixture{repo: repo, dir: family.NewMockDirectory(ctrl), svc: nil}
			f.svc = family.NewService(repo, f.dir)

			if tt.profile != nil {
				repo.EXPECT().GetOrCreateProfile(gomock.Any(), ownerID).Return(tt.profile, nil)
			}

			if tt.setupMock != nil {
				tt.setupMock(f, ctrl)
			}

			g, err := f.svc.CreateGroup(context.Background(), ownerID, tt.groupName, tt.code)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, family.ErrValidation)
				assert.Nil(t, g)

				var vErr *family.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, groupID, g.ID)
			require.NotNil(t, tt.profile.GroupID)
			assert.Equal(t, groupID, *tt.profile.GroupID)
			assert.False(t, tt.profile.IsAdmin)
		})
	}
}

func TestService_Leave(t *testing.T) {
	t.Run("AdminLeaves", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), bobID).Return(bobProfile(true, true), nil)
		f.repo.EXPECT().DetachProfile(gomock.Any(), int64(2)).Return(nil)

		got, err := f.svc.Leave(context.Background(), bobID)
		require.NoError(t, err)
		assert.Nil(t, got.GroupID)
		assert.False(t, got.IsAdmin)
	})

	t.Run("NotInGroup", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), bobID).Return(bobProfile(false, false), nil)

		got, err := f.svc.Leave(context.Background(), bobID)
		require.NoError(t, err)
		assert.Nil(t, got.GroupID)
	})
}

func TestService_Overview(t *testing.T) {
	f := newFixture(t)
	f.expectCurrent(ownerProfile())

	ov, err := f.svc.Overview(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, family.RoleOwner, ov.Role)
	assert.Equal(t, "F123", ov.Group.Code)

	f.expectCurrent(carolProfile(false))

	ov, err = f.svc.Overview(context.Background(), carolID)
	require.NoError(t, err)
	assert.Nil(t, ov.Group)
	assert.Empty(t, ov.Role)
}

func TestService_UpdateProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), bobID).Return(bobProfile(true, false), nil)
		f.repo.EXPECT().
			UpdateProfile(gomock.Any(), int64(2), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, upd family.ProfileUpdate) (*family.Profile, error) {
				require.NotNil(t, upd.Nickname)
				assert.Equal(t, "Bobby", *upd.Nickname)
				assert.True(t, upd.Income.Equal(decimal.RequireFromString("2500.50")))
				assert.Nil(t, upd.Expenses)

				p := bobProfile(true, false)
				p.Nickname = *upd.Nickname
				p.Income = *upd.Income

				return p, nil
			})

		got, err := f.svc.UpdateProfile(context.Background(), bobID, family.ProfileUpdate{
			Nickname: new("Bobby"),
			Income:   new(decimal.RequireFromString("2500.50")),
		})
		require.NoError(t, err)
		assert.Equal(t, "Bobby", got.DisplayName())
	})

	t.Run("ExtraExpensesInSameWrite", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), bobID).Return(bobProfile(true, false), nil)
		f.repo.EXPECT().
			UpdateProfile(gomock.Any(), int64(2), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, upd family.ProfileUpdate) (*family.Profile, error) {
				assert.True(t, upd.ExtraExpenses.Equal(decimal.NewFromInt(25)))

				p := bobProfile(true, false)
				p.Expenses = decimal.NewFromInt(125)

				return p, nil
			})

		got, err := f.svc.UpdateProfile(context.Background(), bobID, family.ProfileUpdate{
			ExtraExpenses: decimal.NewFromInt(25),
		})
		require.NoError(t, err)
		assert.True(t, got.Expenses.Equal(decimal.NewFromInt(125)))
	})

	t.Run("MultibyteNickname", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), bobID).Return(bobProfile(true, false), nil)
		f.repo.EXPECT().UpdateProfile(gomock.Any(), int64(2), gomock.Any()).Return(bobProfile(true, false), nil)

		_, err := f.svc.UpdateProfile(context.Background(), bobID, family.ProfileUpdate{
			Nickname: new(strings.Repeat("家", 50)),
		})
		require.NoError(t, err)

		_, err = f.svc.UpdateProfile(context.Background(), bobID, family.ProfileUpdate{
			Nickname: new(strings.Repeat("家", 51)),
		})
		assert.ErrorIs(t, err, family.ErrValidation)
	})

	type invalidCase struct {
		name      string
		upd       family.ProfileUpdate
		wantField string
	}

	invalid := []invalidCase{
		{name: "NegativeIncome", upd: family.ProfileUpdate{Income: new(decimal.NewFromInt(-1))}, wantField: "income"},
		{name: "NegativeExpenses", upd: family.ProfileUpdate{Expenses: new(decimal.NewFromInt(-5))}, wantField: "expenses"},
		{name: "IncomeTooPrecise", upd: family.ProfileUpdate{Income: new(decimal.RequireFromString("10.001"))}, wantField: "income"},
		{name: "IncomeOverflow", upd: family.ProfileUpdate{Income: new(decimal.NewFromInt(100000000))}, wantField: "income"},
		{name: "ExpensesOverflow", upd: family.ProfileUpdate{Expenses: new(decimal.RequireFromString("1e9"))}, wantField: "expenses"},
		{name: "ExtraTooPrecise", upd: family.ProfileUpdate{ExtraExpenses: decimal.RequireFromString("0.005")}, wantField: "category_expenses"},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.UpdateProfile(context.Background(), bobID, tt.upd)

			var vErr *family.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}

	t.Run("ExtraPushesExpensesOverMax", func(t *testing.T) {
		f := newFixture(t)
		p := bobProfile(true, false)
		p.Expenses = decimal.RequireFromString("99999990")

		f.repo.EXPECT().GetOrCreateProfile(gomock.Any(), bobID).Return(p, nil)

		_, err := f.svc.UpdateProfile(context.Background(), bobID, family.ProfileUpdate{
			ExtraExpenses: decimal.NewFromInt(10),
		})

		var vErr *family.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "expenses", vErr.Field)
	})
}

func TestCheckAmount(t *testing.T) {
	type testCase struct {
		name    string
		amount  string
		max     decimal.Decimal
		wantErr bool
	}

	tests := []testCase{
		{name: "Zero", amount: "0", max: family.MaxAmount},
		{name: "TwoPlaces", amount: "12.34", max: family.MaxAmount},
		{name: "TrailingZeros", amount: "12.3400", max: family.MaxAmount},
		{name: "AtMax", amount: "99999999.99", max: family.MaxAmount},
		{name: "OverMax", amount: "100000000", max: family.MaxAmount, wantErr: true},
		{name: "ThreePlaces", amount: "0.001", max: family.MaxAmount, wantErr: true},
		{name: "Negative", amount: "-0.01", max: family.MaxAmount, wantErr: true},
		{name: "GoalMax", amount: "9999999999.99", max: family.MaxGoalAmount},
		{name: "GoalOverMax", amount: "1e10", max: family.MaxGoalAmount, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := family.CheckAmount("amount", decimal.RequireFromString(tt.amount), tt.max)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var vErr *family.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, "amount", vErr.Field)
		})
	}
}
