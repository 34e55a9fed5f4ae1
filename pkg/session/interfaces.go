package session

import (
	"context"

	"github.com/tradebinder/tradebinder/pkg/clients/marketplace"
	"github.com/tradebinder/tradebinder/pkg/types"
)

// Backend is the slice of the marketplace API the session store depends
// on. It exists so tests can substitute a fake for the HTTP client.
type Backend interface {
	// FetchUser fetches a full user profile by id.
	FetchUser(ctx context.Context, userID string) (*types.User, error)

	// UpdateUser applies a partial profile update and returns the updated user.
	UpdateUser(ctx context.Context, userID string, patch types.UserPatch) (*types.User, error)

	// FetchUserCollections returns every collection owned by the user.
	FetchUserCollections(ctx context.Context, userID string) ([]types.Collection, error)

	// CreateCollection creates a collection and returns the server's object.
	CreateCollection(ctx context.Context, collection types.Collection) (*types.Collection, error)

	// ToggleFavorite flips the favorite flag and returns the updated collection.
	ToggleFavorite(ctx context.Context, collectionID string) (*types.Collection, error)

	// DeleteCollection deletes a collection.
	DeleteCollection(ctx context.Context, collectionID string) error

	// AddCardToCollection adds a card and returns the updated collection.
	AddCardToCollection(ctx context.Context, collectionID, cardID string) (*types.Collection, error)

	// RemoveCardFromCollection removes a card; callers patch locally.
	RemoveCardFromCollection(ctx context.Context, collectionID, cardID string) error

	// CardInCollection checks card membership.
	CardInCollection(ctx context.Context, collectionID, cardID string) (bool, error)

	// FetchInventory returns the user's inventory.
	FetchInventory(ctx context.Context, userID string) ([]types.Product, error)

	// AddProductToInventory associates a product with the user's inventory.
	AddProductToInventory(ctx context.Context, userID, productID string) error

	// RemoveProductFromInventory removes the association.
	RemoveProductFromInventory(ctx context.Context, userID, productID string) error
}

// Compile-time interface compliance check
var _ Backend = (*marketplace.Client)(nil)
