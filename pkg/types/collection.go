package types

// CollectionItem is a single card reference inside a collection.
type CollectionItem struct {
	ProductID string `json:"productId"`
	DateAdded string `json:"dateAdded,omitempty"`
}

// Collection is a named, user-owned grouping of card references.
// Wire format matches the marketplace API: `card_count` is authoritative on
// the server, but clients recompute it as len(cards) whenever they patch
// `cards` locally.
type Collection struct {
	ID            string           `json:"_id,omitempty"`
	Name          string           `json:"name"`
	CoverImageURL string           `json:"img_url,omitempty"`
	CardCount     int              `json:"card_count"`
	IsFavorite    bool             `json:"is_favorite"`
	Cards         []CollectionItem `json:"cards"`
	OwnerID       string           `json:"createdBy"`
	CreatedAt     string           `json:"createdAt,omitempty"`
}

// ContainsCard reports whether the collection references the given product.
func (c *Collection) ContainsCard(productID string) bool {
	for _, item := range c.Cards {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
