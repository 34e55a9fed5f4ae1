package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_ContainsCard(t *testing.T) {
	collection := Collection{
		Cards: []CollectionItem{
			{ProductID: "p1"},
			{ProductID: "p2"},
		},
	}

	assert.True(t, collection.ContainsCard("p1"))
	assert.False(t, collection.ContainsCard("p9"))

	var empty Collection
	assert.False(t, empty.ContainsCard("p1"))
}

func TestUserPatch_Apply(t *testing.T) {
	user := User{
		ID:       "u1",
		Username: "ashk",
		Email:    "ash@tradebinder.app",
		Location: "Pallet Town",
	}

	location := "Vermilion City"
	empty := ""
	patch := UserPatch{
		Location: &location,
		Email:    &empty,
	}
	patch.Apply(&user)

	assert.Equal(t, "Vermilion City", user.Location)
	assert.Empty(t, user.Email, "a pointer to the zero value overwrites")
	assert.Equal(t, "ashk", user.Username, "nil pointers leave fields untouched")
}

func TestCollection_WireFormat(t *testing.T) {
	raw := `{
		"_id": "c1",
		"name": "Binder",
		"img_url": "https://img/cover.png",
		"card_count": 1,
		"is_favorite": true,
		"cards": [{"productId": "p1", "dateAdded": "2025-08-01T10:00:00Z"}],
		"createdBy": "u1"
	}`

	var collection Collection
	require.NoError(t, json.Unmarshal([]byte(raw), &collection))

	assert.Equal(t, "c1", collection.ID)
	assert.Equal(t, "https://img/cover.png", collection.CoverImageURL)
	assert.Equal(t, 1, collection.CardCount)
	assert.True(t, collection.IsFavorite)
	assert.Equal(t, "u1", collection.OwnerID)
	require.Len(t, collection.Cards, 1)
	assert.Equal(t, "p1", collection.Cards[0].ProductID)
}
