package users

import (
	"context"

	"github.com/lib/pq"

	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
	"github.com/craftloop/craftloop-backend/pkg/logger"
)

type Service struct {
	store Store
	logg  *logger.Logger
}

func NewService(store Store, logg *logger.Logger) *Service {
	return &Service{store: store, logg: logg}
}

func (s *Service) Get(ctx context.Context, id uint) (*UserResponse, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies partial profile changes. Users can only edit
// themselves.
func (s *Service) UpdateProfile(ctx context.Context, id, actorID uint, req UpdateUserRequest) (*UserResponse, error) {
	if id != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot edit another user's profile")
	}

	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Interests != nil {
		user.Interests = pq.StringArray(*req.Interests)
	}

	if err := s.store.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating user")
	}

	resp := ToUserResponse(user)
	return &resp, nil
}
