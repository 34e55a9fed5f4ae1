package types

// SetInfo describes the card set a product belongs to.
type SetInfo struct {
	Name        string `json:"name"`
	Series      string `json:"series,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
}

// ProductImages holds the image variants served by the card database.
type ProductImages struct {
	Small string `json:"small,omitempty"`
	Large string `json:"large,omitempty"`
}

// Product is an inventory item or catalog card. Price is always the
// canonical source currency (USD equivalent); display conversion is a
// presentation concern handled by pkg/transform.
type Product struct {
	ID            string         `json:"_id,omitempty"`
	Name          string         `json:"name"`
	ProductType   string         `json:"productType"`
	TCGID         string         `json:"tcgId,omitempty"`
	Supertype     string         `json:"supertype,omitempty"`
	Subtypes      []string       `json:"subtypes,omitempty"`
	HP            string         `json:"hp,omitempty"`
	Types         []string       `json:"types,omitempty"`
	Rarity        string         `json:"rarity,omitempty"`
	SetInfo       *SetInfo       `json:"setInfo,omitempty"`
	Number        string         `json:"number,omitempty"`
	Images        *ProductImages `json:"images,omitempty"`
	Price         float64        `json:"price"`
	CostPrice     float64        `json:"costPrice,omitempty"`
	StockQuantity int            `json:"stockQuantity"`
	IsAvailable   bool           `json:"isAvailable"`
	Condition     string         `json:"condition,omitempty"`
	Language      string         `json:"language,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	Notes         string         `json:"notes,omitempty"`
}

// InventoryResponse is the envelope returned by GET /users/{id}/inventory.
type InventoryResponse struct {
	Inventory []Product `json:"inventory"`
}

// ContainsResponse is returned by GET /collections/{id}/contains/{cardId}.
type ContainsResponse struct {
	Contains bool `json:"contains"`
}
