// Copyright (c) 2026 NexusHost. All rights reserved.
// Author: platform@nexushost.io

package admin_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexushost/api/internal/platform/apperr"
	"github.com/nexushost/api/internal/platform/sec"
	"github.com/nexushost/api/internal/users/admin"
	"github.com/nexushost/api/internal/users/auth"
	"github.com/nexushost/api/pkg/pointer"
	"github.com/nexushost/api/pkg/uuid"
)

// # In-Memory Fake

type fakeUserRepo struct {
	users map[string]*auth.User // keyed by ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*auth.User{}}
}

func (repo *fakeUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := repo.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepo) FindByResetTokenHash(_ context.Context, _ string) (*auth.User, error) {
	return nil, apperr.NotFound("Reset token")
}

func (repo *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	repo.users[user.ID] = user
	return nil
}

func (repo *fakeUserRepo) Update(_ context.Context, user *auth.User) error {
	if _, ok := repo.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	repo.users[user.ID] = user
	return nil
}

func (repo *fakeUserRepo) UpdatePassword(_ context.Context, userID, newHash string) error {
	if user, ok := repo.users[userID]; ok {
		user.PasswordHash = newHash
	}
	return nil
}

func (repo *fakeUserRepo) SetResetToken(_ context.Context, _, _ string, _ time.Time) error {
	return nil
}

func (repo *fakeUserRepo) UpdatePasswordAndClearResetToken(_ context.Context, userID, newHash string) error {
	return repo.UpdatePassword(nil, userID, newHash)
}

func (repo *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := repo.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(repo.users, id)
	return nil
}

func (repo *fakeUserRepo) List(_ context.Context, filter auth.ListFilter) ([]*auth.User, int, error) {
	matched := []*auth.User{}
	for _, user := range repo.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.IsEmailVerified != nil && user.IsEmailVerified != *filter.IsEmailVerified {
			continue
		}
		if filter.Search != "" && !strings.Contains(user.Username, filter.Search) &&
			!strings.Contains(user.Email, filter.Search) {
			continue
		}
		matched = append(matched, user)
	}

	total := len(matched)
	if filter.Offset >= total {
		return []*auth.User{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if filter.Limit <= 0 || end > total {
		end = total
	}
	return matched[filter.Offset:end], total, nil
}

// # Test Harness

func seedUser(repo *fakeUserRepo, username, email string, role sec.UserRole) *auth.User {
	user := &auth.User{
		ID:           uuid.New(),
		UUID:         uuid.NewV4(),
		FirstName:    "Grace",
		LastName:     "Hopper",
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhash",
		Role:         role,
	}
	repo.users[user.ID] = user
	return user
}

// # Listing

/*
TestList_SanitizesAndFilters verifies account mapping and role filtering.
*/
func TestList_SanitizesAndFilters(t *testing.T) {
	repo := newFakeUserRepo()
	service := admin.NewService(repo)
	seedUser(repo, "grace", "grace@example.com", sec.RoleAdmin)
	seedUser(repo, "alan", "alan@example.com", sec.RoleUser)
	seedUser(repo, "edsger", "edsger@example.com", sec.RoleUser)

	accounts, total, err := service.List(context.Background(), auth.ListFilter{Role: sec.RoleUser, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, accounts, 2)

	// The sanitized view carries no credential material
	for _, account := range accounts {
		assert.Equal(t, sec.RoleUser, account.Role)
		assert.NotEmpty(t, account.ID)
		assert.NotEmpty(t, account.Username)
	}
}

/*
TestGet verifies retrieval and the not-found path.
*/
func TestGet(t *testing.T) {
	repo := newFakeUserRepo()
	service := admin.NewService(repo)
	user := seedUser(repo, "grace", "grace@example.com", sec.RoleAdmin)

	account, err := service.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, account.ID)
	assert.Equal(t, "grace", account.Username)

	_, err = service.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

// # Creation

/*
TestCreate_WithRole verifies operator-driven provisioning.
*/
func TestCreate_WithRole(t *testing.T) {
	repo := newFakeUserRepo()
	service := admin.NewService(repo)

	account, err := service.Create(context.Background(), admin.CreateInput{
		FirstName:       "Grace",
		LastName:        "Hopper",
		Username:        "grace",
		Email:           "grace@example.com",
		Password:        "Sup3rSecret",
		Role:            sec.RoleClient,
		IsEmailVerified: true,
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleClient, account.Role)
	assert.True(t, account.IsEmailVerified)

	// The stored entity is hashed, never plain-text
	stored, err := repo.FindByEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", stored.PasswordHash)
}

/*
TestCreate_Conflicts verifies duplicate identity rejection.
*/
func TestCreate_Conflicts(t *testing.T) {
	repo := newFakeUserRepo()
	service := admin.NewService(repo)
	seedUser(repo, "grace", "grace@example.com", sec.RoleUser)

	_, err := service.Create(context.Background(), admin.CreateInput{
		Username: "other", Email: "grace@example.com", Password: "Sup3rSecret", Role: sec.RoleUser,
	})
	require.Error(t, err)
	assert.Equal(t, "Email already exists", apperr.As(err).Message)

	_, err = service.Create(context.Background(), admin.CreateInput{
		Username: "grace", Email: "new@example.com", Password: "Sup3rSecret", Role: sec.RoleUser,
	})
	require.Error(t, err)
	assert.Equal(t, "Username already exists", apperr.As(err).Message)
}

// # Mutation

/*
TestUpdate_PartialOverlay verifies that nil fields are left untouched.
*/
func TestUpdate_PartialOverlay(t *testing.T) {
	repo := newFakeUserRepo()
	service := admin.NewService(repo)
	user := seedUser(repo, "grace", "grace@example.com", sec.RoleUser)

	account, err := service.Update(context.Background(), user.ID, admin.UpdateInput{
		FirstName: pointer.To("Updated"),
		Role:      pointer.To(sec.RoleAdmin),
	})
	require.NoError(t, err)

	assert.Equal(t, "Updated", account.FirstName)
	assert.Equal(t, sec.RoleAdmin, account.Role)

	// Untouched fields survive the overlay
	assert.Equal(t, "Hopper", account.LastName)
	assert.Equal(t, "grace", account.Username)
	assert.Equal(t, "grace@example.com", account.Email)
}

/*
TestUpdate_EmptyInput verifies rejection of a no-op update body.
*/
func TestUpdate_EmptyInput(t *testing.T) {
	repo := newFakeUserRepo()
	service := admin.NewService(repo)
	user := seedUser(repo, "grace", "grace@example.com", sec.RoleUser)

	_, err := service.Update(context.Background(), user.ID, admin.UpdateInput{})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
	assert.Equal(t, "No update data provided", ae.Message)
}

/*
TestUpdate_UniquenessExcludesSelf verifies conflict checks against other accounts only.
*/
func TestUpdate_UniquenessExcludesSelf(t *testing.T) {
	repo := newFakeUserRepo()
	service := admin.NewService(repo)
	grace := seedUser(repo, "grace", "grace@example.com", sec.RoleUser)
	seedUser(repo, "alan", "alan@example.com", sec.RoleUser)

	// Re-submitting your own email is a no-op, not a conflict
	_, err := service.Update(context.Background(), grace.ID, admin.UpdateInput{
		Email: pointer.To("grace@example.com"),
	})
	assert.NoError(t, err)

	// Claiming another account's email is a conflict
	_, err = service.Update(context.Background(), grace.ID, admin.UpdateInput{
		Email: pointer.To("alan@example.com"),
	})
	require.Error(t, err)
	assert.Equal(t, "Email already exists", apperr.As(err).Message)

	// Same rule for usernames
	_, err = service.Update(context.Background(), grace.ID, admin.UpdateInput{
		Username: pointer.To("alan"),
	})
	require.Error(t, err)
	assert.Equal(t, "Username already exists", apperr.As(err).Message)
}

/*
TestUpdatePassword verifies the hash rotation path.
*/
func TestUpdatePassword(t *testing.T) {
	repo := newFakeUserRepo()
	service := admin.NewService(repo)
	user := seedUser(repo, "grace", "grace@example.com", sec.RoleUser)
	previousHash := user.PasswordHash

	require.NoError(t, service.UpdatePassword(context.Background(), user.ID, "N3wPassword"))

	assert.NotEqual(t, previousHash, repo.users[user.ID].PasswordHash)
	assert.True(t, sec.CheckPasswordHash("N3wPassword", repo.users[user.ID].PasswordHash))

	// Unknown targets are rejected before any hashing work
	err := service.UpdatePassword(context.Background(), uuid.New(), "N3wPassword")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}

// # Deletion

/*
TestDelete verifies removal and the self-deletion guard.
*/
func TestDelete(t *testing.T) {
	repo := newFakeUserRepo()
	service := admin.NewService(repo)
	caller := seedUser(repo, "grace", "grace@example.com", sec.RoleAdmin)
	target := seedUser(repo, "alan", "alan@example.com", sec.RoleUser)

	// Operators cannot delete themselves
	err := service.Delete(context.Background(), caller.ID, caller.ID)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
	assert.Equal(t, "Cannot delete your own account", ae.Message)

	// Deleting another account succeeds and is observable
	require.NoError(t, service.Delete(context.Background(), caller.ID, target.ID))
	_, err = service.Get(context.Background(), target.ID)
	assert.Error(t, err)

	// Deleting a missing account is a 404
	err = service.Delete(context.Background(), caller.ID, target.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
}
