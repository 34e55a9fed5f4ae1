package transform

import (
	"math"

	"github.com/tradebinder/tradebinder/pkg/types"
)

// Display-currency conversion. Prices arrive in the canonical source
// currency (USD equivalent) and are converted with a fixed build-time rate;
// this is a presentation concern only, never written back to the server.
const (
	// ExchangeRate converts the source price to the display currency (VND).
	ExchangeRate = 24500.0

	// MinDisplayPrice substitutes for prices that are NaN, infinite or
	// negative.
	MinDisplayPrice int64 = 5000

	// CheapSourceThreshold marks a valid source price as "true pennies";
	// converted values below it clamp up to CheapMinDisplayPrice so the UI
	// never shows a near-zero price.
	CheapSourceThreshold = 0.5

	// CheapMinDisplayPrice is the floor for cheap-but-valid prices. It is
	// strictly greater than MinDisplayPrice.
	CheapMinDisplayPrice int64 = 15000
)

// Fallbacks for fields the card database may omit.
const (
	UnknownSetName      = "Unknown set"
	PlaceholderImageURL = "https://images.tradebinder.app/cards/placeholder.png"
	DefaultRarity       = "Common"
	DefaultCondition    = "Near Mint"
)

// DisplayPrice converts a source-currency price to a rounded
// display-currency amount. Invalid inputs map to MinDisplayPrice; valid
// prices under CheapSourceThreshold clamp up to CheapMinDisplayPrice.
func DisplayPrice(sourcePrice float64) int64 {
	if math.IsNaN(sourcePrice) || math.IsInf(sourcePrice, 0) || sourcePrice < 0 {
		return MinDisplayPrice
	}

	converted := int64(math.Round(sourcePrice * ExchangeRate))
	if sourcePrice < CheapSourceThreshold && converted < CheapMinDisplayPrice {
		return CheapMinDisplayPrice
	}
	if converted < MinDisplayPrice {
		return MinDisplayPrice
	}
	return converted
}

// CardView is a display-ready projection of a Product: display-currency
// price, flattened set name, safe fallbacks, and never-nil slices.
type CardView struct {
	ID            string
	Name          string
	ProductType   string
	SetName       string
	Number        string
	Rarity        string
	Condition     string
	Types         []string
	Subtypes      []string
	ImageURL      string
	DisplayPrice  int64
	StockQuantity int
	IsAvailable   bool
}

// NewCardView builds the canonical view model for a product. It is
// deterministic and side-effect free.
func NewCardView(p types.Product) CardView {
	view := CardView{
		ID:            p.ID,
		Name:          p.Name,
		ProductType:   p.ProductType,
		SetName:       UnknownSetName,
		Number:        p.Number,
		Rarity:        p.Rarity,
		Condition:     p.Condition,
		Types:         p.Types,
		Subtypes:      p.Subtypes,
		ImageURL:      PlaceholderImageURL,
		DisplayPrice:  DisplayPrice(p.Price),
		StockQuantity: p.StockQuantity,
		IsAvailable:   p.IsAvailable,
	}

	if p.SetInfo != nil && p.SetInfo.Name != "" {
		view.SetName = p.SetInfo.Name
	}
	if p.Images != nil {
		if p.Images.Large != "" {
			view.ImageURL = p.Images.Large
		} else if p.Images.Small != "" {
			view.ImageURL = p.Images.Small
		}
	}
	if view.Rarity == "" {
		view.Rarity = DefaultRarity
	}
	if view.Condition == "" {
		view.Condition = DefaultCondition
	}
	if view.Types == nil {
		view.Types = []string{}
	}
	if view.Subtypes == nil {
		view.Subtypes = []string{}
	}

	return view
}

// NewCardViews maps a product slice; the result is never nil.
func NewCardViews(products []types.Product) []CardView {
	views := make([]CardView, 0, len(products))
	for _, p := range products {
		views = append(views, NewCardView(p))
	}
	return views
}
