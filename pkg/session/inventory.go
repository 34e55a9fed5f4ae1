package session

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tradebinder/tradebinder/pkg/logger"
	"github.com/tradebinder/tradebinder/pkg/types"
)

// LoadInventory replaces the inventory slice wholesale with the server's
// response; failures leave prior data visible and set InventoryError.
// Superseded loads discard their response.
func (s *Store) LoadInventory(ctx context.Context) error {
	ctx = logger.WithRequestID(ctx)

	var gen uint64
	var userID string
	s.mutate(func() bool {
		s.inventoryGen++
		gen = s.inventoryGen
		userID = s.user.ID
		s.invLoading = true
		return true
	})

	inventory, err := s.backend.FetchInventory(ctx, userID)

	s.mutate(func() bool {
		if gen != s.inventoryGen {
			return false
		}
		s.invLoading = false
		if err != nil {
			s.invErr = err.Error()
			return true
		}
		if inventory == nil {
			inventory = []types.Product{}
		}
		s.inventory = inventory
		s.invErr = ""
		return true
	})

	return err
}

// AddProductToInventory associates the product with the user's inventory,
// then reloads the inventory wholesale rather than appending locally, so
// the server's view of the new entry wins.
func (s *Store) AddProductToInventory(ctx context.Context, productID string) error {
	ctx = logger.WithRequestID(ctx)

	if err := s.backend.AddProductToInventory(ctx, s.currentUserID(), productID); err != nil {
		s.mutate(func() bool {
			s.invErr = err.Error()
			return true
		})
		return err
	}

	return s.LoadInventory(ctx)
}

// RemoveProductFromInventory removes the association server-side, then
// filters the entry out of local state. Unlike the add path there is no
// reload; this mirrors RemoveCardFromCollection's local-patch strategy.
func (s *Store) RemoveProductFromInventory(ctx context.Context, productID string) error {
	ctx = logger.WithRequestID(ctx)

	if err := s.backend.RemoveProductFromInventory(ctx, s.currentUserID(), productID); err != nil {
		s.mutate(func() bool {
			s.invErr = err.Error()
			return true
		})
		return err
	}

	s.mutate(func() bool {
		kept := s.inventory[:0:0]
		for _, p := range s.inventory {
			if p.ID != productID {
				kept = append(kept, p)
			}
		}
		if kept == nil {
			kept = []types.Product{}
		}
		s.inventory = kept
		s.invErr = ""
		return true
	})

	return nil
}

// Refresh loads collections and inventory in parallel.
func (s *Store) Refresh(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.LoadCollections(ctx)
	})
	g.Go(func() error {
		return s.LoadInventory(ctx)
	})
	return g.Wait()
}
