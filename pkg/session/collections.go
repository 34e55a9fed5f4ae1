package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/tradebinder/tradebinder/pkg/logger"
	"github.com/tradebinder/tradebinder/pkg/types"
)

// ErrCollectionNotFound is returned by DeleteCollection when the id is not
// in local state; the server is not contacted in that case.
var ErrCollectionNotFound = errors.New("collection not found")

// LoadCollections replaces the collections slice wholesale with the
// server's response. On failure the previous data stays visible and Error
// is set. A load superseded by a newer LoadCollections call discards its
// response instead of overwriting the newer result.
func (s *Store) LoadCollections(ctx context.Context) error {
	ctx = logger.WithRequestID(ctx)

	var gen uint64
	var userID string
	s.mutate(func() bool {
		s.collectionsGen++
		gen = s.collectionsGen
		userID = s.user.ID
		s.loading = true
		return true
	})

	collections, err := s.backend.FetchUserCollections(ctx, userID)

	s.mutate(func() bool {
		if gen != s.collectionsGen {
			// a newer load owns the flag and the data now
			return false
		}
		s.loading = false
		if err != nil {
			s.loadErr = err.Error()
			return true
		}
		if collections == nil {
			collections = []types.Collection{}
		}
		s.collections = collections
		s.loadErr = ""
		return true
	})

	return err
}

// CreateCollection creates a collection owned by the current user and
// appends the server's returned object to local state.
func (s *Store) CreateCollection(ctx context.Context, name, coverImageURL string) (*types.Collection, error) {
	ctx = logger.WithRequestID(ctx)

	payload := types.Collection{
		Name:          name,
		CoverImageURL: coverImageURL,
		CardCount:     0,
		IsFavorite:    false,
		Cards:         []types.CollectionItem{},
		OwnerID:       s.currentUserID(),
	}

	created, err := s.backend.CreateCollection(ctx, payload)
	if err != nil {
		s.mutate(func() bool {
			s.loadErr = err.Error()
			return true
		})
		return nil, err
	}

	s.mutate(func() bool {
		if created.Cards == nil {
			created.Cards = []types.CollectionItem{}
		}
		s.collections = append(s.collections, *created)
		s.loadErr = ""
		return true
	})

	return created, nil
}

// ToggleFavorite flips the favorite flag server-side and replaces the
// matching local entry with the server's object. Whether the id exists is
// the server's call; there is no local pre-check here.
func (s *Store) ToggleFavorite(ctx context.Context, collectionID string) error {
	ctx = logger.WithRequestID(ctx)

	updated, err := s.backend.ToggleFavorite(ctx, collectionID)
	if err != nil {
		s.mutate(func() bool {
			s.loadErr = err.Error()
			return true
		})
		return err
	}

	s.mutate(func() bool {
		for i := range s.collections {
			if s.collections[i].ID == updated.ID {
				if updated.Cards == nil {
					updated.Cards = []types.CollectionItem{}
				}
				s.collections[i] = *updated
				break
			}
		}
		s.loadErr = ""
		return true
	})

	return nil
}

// DeleteCollection removes a collection. This is the one operation with a
// client-side guard: an id absent from local state fails without a network
// call. The local entry is removed only after the server confirms.
func (s *Store) DeleteCollection(ctx context.Context, collectionID string) error {
	ctx = logger.WithRequestID(ctx)

	s.mu.Lock()
	found := false
	for i := range s.collections {
		if s.collections[i].ID == collectionID {
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		err := fmt.Errorf("%w: %s", ErrCollectionNotFound, collectionID)
		s.mutate(func() bool {
			s.loadErr = err.Error()
			return true
		})
		return err
	}

	if err := s.backend.DeleteCollection(ctx, collectionID); err != nil {
		s.mutate(func() bool {
			s.loadErr = err.Error()
			return true
		})
		return err
	}

	s.mutate(func() bool {
		kept := s.collections[:0:0]
		for _, c := range s.collections {
			if c.ID != collectionID {
				kept = append(kept, c)
			}
		}
		s.collections = kept
		s.loadErr = ""
		return true
	})

	return nil
}

// AddCardToCollection adds a card server-side and replaces the whole local
// collection with the server's response, whose card_count is
// authoritative. Contrast with RemoveCardFromCollection, which patches
// locally; the asymmetry matches observed app behavior and is kept on
// purpose.
func (s *Store) AddCardToCollection(ctx context.Context, collectionID, cardID string) error {
	ctx = logger.WithRequestID(ctx)

	updated, err := s.backend.AddCardToCollection(ctx, collectionID, cardID)
	if err != nil {
		s.mutate(func() bool {
			s.loadErr = err.Error()
			return true
		})
		return err
	}

	s.mutate(func() bool {
		for i := range s.collections {
			if s.collections[i].ID == updated.ID {
				if updated.Cards == nil {
					updated.Cards = []types.CollectionItem{}
				}
				s.collections[i] = *updated
				break
			}
		}
		s.loadErr = ""
		return true
	})

	return nil
}

// RemoveCardFromCollection removes a card server-side, then patches the
// local collection by filtering the item out and recomputing card_count as
// len(cards). No re-fetch is made.
func (s *Store) RemoveCardFromCollection(ctx context.Context, collectionID, cardID string) error {
	ctx = logger.WithRequestID(ctx)

	if err := s.backend.RemoveCardFromCollection(ctx, collectionID, cardID); err != nil {
		s.mutate(func() bool {
			s.loadErr = err.Error()
			return true
		})
		return err
	}

	s.mutate(func() bool {
		for i := range s.collections {
			if s.collections[i].ID != collectionID {
				continue
			}
			kept := s.collections[i].Cards[:0:0]
			for _, item := range s.collections[i].Cards {
				if item.ProductID != cardID {
					kept = append(kept, item)
				}
			}
			if kept == nil {
				kept = []types.CollectionItem{}
			}
			s.collections[i].Cards = kept
			s.collections[i].CardCount = len(kept)
			break
		}
		s.loadErr = ""
		return true
	})

	return nil
}

// CardInCollection reports membership. It is used as a boolean gate by
// callers, so failures degrade to false instead of propagating.
func (s *Store) CardInCollection(ctx context.Context, collectionID, cardID string) bool {
	ctx = logger.WithRequestID(ctx)

	contains, err := s.backend.CardInCollection(ctx, collectionID, cardID)
	if err != nil {
		logger.Logger(ctx).WithError(err).Warn("membership check failed, assuming not in collection")
		return false
	}
	return contains
}
