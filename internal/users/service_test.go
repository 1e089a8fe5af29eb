package users

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/craftloop/craftloop-backend/pkg/db/models"
	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

type stubStore struct {
	users  map[uint]*models.User
	nextID uint
}

func newStubStore() *stubStore {
	return &stubStore{users: map[uint]*models.User{}, nextID: 1}
}

func (s *stubStore) Create(_ context.Context, user *models.User) error {
	user.ID = s.nextID
	s.nextID++
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubStore) FindByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *stubStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubStore) Update(_ context.Context, user *models.User) error {
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubStore) SetLastLogin(_ context.Context, id uint, at time.Time) error {
	if user, ok := s.users[id]; ok {
		user.LastLoginAt = &at
	}
	return nil
}

func newTestService(store *stubStore) *Service {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewService(store, logg)
}

func TestGetUser(t *testing.T) {
	store := newStubStore()
	_ = store.Create(context.Background(), &models.User{
		Email:       "maker@example.com",
		DisplayName: "Maker",
	})
	svc := newTestService(store)

	resp, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.Email != "maker@example.com" || resp.Interests == nil {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestGetUserNotFound(t *testing.T) {
	svc := newTestService(newStubStore())
	_, err := svc.Get(context.Background(), 404)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	store := newStubStore()
	_ = store.Create(context.Background(), &models.User{
		Email:       "maker@example.com",
		DisplayName: "Maker",
	})
	svc := newTestService(store)

	name := "Crafty Maker"
	interests := []string{"woodworking", "pottery"}
	resp, err := svc.UpdateProfile(context.Background(), 1, 1, UpdateUserRequest{
		DisplayName: &name,
		Interests:   &interests,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if resp.DisplayName != "Crafty Maker" || len(resp.Interests) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestUpdateProfileSelfOnly(t *testing.T) {
	store := newStubStore()
	_ = store.Create(context.Background(), &models.User{Email: "a@example.com"})
	svc := newTestService(store)

	name := "x"
	_, err := svc.UpdateProfile(context.Background(), 1, 2, UpdateUserRequest{DisplayName: &name})
	if !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
