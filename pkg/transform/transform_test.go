package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/tradebinder/tradebinder/pkg/types"
)

func TestDisplayPrice(t *testing.T) {
	tests := []struct {
		name        string
		sourcePrice float64
		want        int64
	}{
		{
			name:        "regular price converts at the fixed rate",
			sourcePrice: 320.5,
			want:        7852250,
		},
		{
			name:        "one dollar",
			sourcePrice: 1.0,
			want:        24500,
		},
		{
			name:        "cheap but valid price clamps to the cheap floor",
			sourcePrice: 0.05,
			want:        CheapMinDisplayPrice,
		},
		{
			name:        "just under the cheap threshold",
			sourcePrice: 0.49,
			want:        CheapMinDisplayPrice,
		},
		{
			name:        "at the cheap threshold converts normally",
			sourcePrice: 0.5,
			want:        12250,
		},
		{
			name:        "zero clamps to the cheap floor",
			sourcePrice: 0,
			want:        CheapMinDisplayPrice,
		},
		{
			name:        "negative price maps to the minimum",
			sourcePrice: -5,
			want:        MinDisplayPrice,
		},
		{
			name:        "NaN maps to the minimum",
			sourcePrice: math.NaN(),
			want:        MinDisplayPrice,
		},
		{
			name:        "positive infinity maps to the minimum",
			sourcePrice: math.Inf(1),
			want:        MinDisplayPrice,
		},
		{
			name:        "negative infinity maps to the minimum",
			sourcePrice: math.Inf(-1),
			want:        MinDisplayPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayPrice(tt.sourcePrice))
		})
	}
}

func TestDisplayPrice_NeverBelowMinimum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		price := rapid.Float64Range(-1e9, 1e9).Draw(t, "price")
		got := DisplayPrice(price)
		if got < MinDisplayPrice {
			t.Fatalf("DisplayPrice(%v) = %d, below the minimum %d", price, got, MinDisplayPrice)
		}
	})
}

func TestDisplayPrice_ValidPricesConvertExactly(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		price := rapid.Float64Range(CheapSourceThreshold, 1e6).Draw(t, "price")
		want := int64(math.Round(price * ExchangeRate))
		if got := DisplayPrice(price); got != want {
			t.Fatalf("DisplayPrice(%v) = %d, want %d", price, got, want)
		}
	})
}

func TestNewCardView_Fallbacks(t *testing.T) {
	view := NewCardView(types.Product{
		ID:    "p1",
		Name:  "Mystery Card",
		Price: 1.0,
	})

	assert.Equal(t, UnknownSetName, view.SetName)
	assert.Equal(t, PlaceholderImageURL, view.ImageURL)
	assert.Equal(t, DefaultRarity, view.Rarity)
	assert.Equal(t, DefaultCondition, view.Condition)
	assert.NotNil(t, view.Types)
	assert.NotNil(t, view.Subtypes)
	assert.Empty(t, view.Types)
	assert.Empty(t, view.Subtypes)
}

func TestNewCardView_PopulatedProduct(t *testing.T) {
	view := NewCardView(types.Product{
		ID:          "p1",
		Name:        "Charizard",
		ProductType: "card",
		Number:      "4/102",
		Rarity:      "Rare Holo",
		Condition:   "Lightly Played",
		Types:       []string{"Fire"},
		Subtypes:    []string{"Stage 2"},
		Price:       320.5,
		SetInfo:     &types.SetInfo{Name: "Base Set"},
		Images: &types.ProductImages{
			Small: "https://img/small.png",
			Large: "https://img/large.png",
		},
		StockQuantity: 2,
		IsAvailable:   true,
	})

	assert.Equal(t, "Base Set", view.SetName)
	assert.Equal(t, "https://img/large.png", view.ImageURL, "large image wins over small")
	assert.Equal(t, "Rare Holo", view.Rarity)
	assert.Equal(t, "Lightly Played", view.Condition)
	assert.Equal(t, int64(7852250), view.DisplayPrice)
	assert.Equal(t, 2, view.StockQuantity)
	assert.True(t, view.IsAvailable)
}

func TestNewCardView_SmallImageFallback(t *testing.T) {
	view := NewCardView(types.Product{
		ID:     "p1",
		Price:  1.0,
		Images: &types.ProductImages{Small: "https://img/small.png"},
	})
	assert.Equal(t, "https://img/small.png", view.ImageURL)
}

func TestNewCardView_EmptySetNameFallsBack(t *testing.T) {
	view := NewCardView(types.Product{
		ID:      "p1",
		Price:   1.0,
		SetInfo: &types.SetInfo{Name: ""},
	})
	assert.Equal(t, UnknownSetName, view.SetName)
}

func TestNewCardViews(t *testing.T) {
	views := NewCardViews(nil)
	assert.NotNil(t, views)
	assert.Empty(t, views)

	views = NewCardViews([]types.Product{
		{ID: "p1", Price: 1.0},
		{ID: "p2", Price: 0.05},
	})
	assert.Len(t, views, 2)
	assert.Equal(t, CheapMinDisplayPrice, views[1].DisplayPrice)
}
