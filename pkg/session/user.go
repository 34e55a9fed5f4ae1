package session

import (
	"context"

	"github.com/tradebinder/tradebinder/pkg/logger"
	"github.com/tradebinder/tradebinder/pkg/types"
)

// ApplyUserPatch merges partial profile fields into the current user
// without a network call and notifies subscribers. No validation is
// performed; any field may be overwritten.
func (s *Store) ApplyUserPatch(patch types.UserPatch) {
	s.mutate(func() bool {
		patch.Apply(&s.user)
		return true
	})
}

// SaveUser sends a partial profile update to the server and replaces the
// current user with the server's response.
func (s *Store) SaveUser(ctx context.Context, patch types.UserPatch) error {
	ctx = logger.WithRequestID(ctx)

	updated, err := s.backend.UpdateUser(ctx, s.currentUserID(), patch)
	if err != nil {
		s.mutate(func() bool {
			s.loadErr = err.Error()
			return true
		})
		return err
	}

	s.mutate(func() bool {
		s.user = *updated
		s.loadErr = ""
		return true
	})
	return nil
}

// ReloadUser replaces the current user with a fresh profile from the
// server.
func (s *Store) ReloadUser(ctx context.Context) error {
	ctx = logger.WithRequestID(ctx)

	user, err := s.backend.FetchUser(ctx, s.currentUserID())
	if err != nil {
		s.mutate(func() bool {
			s.loadErr = err.Error()
			return true
		})
		return err
	}

	s.mutate(func() bool {
		s.user = *user
		s.loadErr = ""
		return true
	})
	return nil
}
