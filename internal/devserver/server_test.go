package devserver

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradebinder/tradebinder/pkg/clients/marketplace"
	"github.com/tradebinder/tradebinder/pkg/request/httpclient"
	"github.com/tradebinder/tradebinder/pkg/types"
)

func TestDefaultFixtures(t *testing.T) {
	fixtures, err := DefaultFixtures()
	require.NoError(t, err)

	require.Len(t, fixtures.Users, 1)
	assert.Equal(t, "u1", fixtures.Users[0].ID)
	assert.Equal(t, "Ash Ketchum", fixtures.Users[0].DisplayName)

	require.Len(t, fixtures.Products, 3)
	charizard := fixtures.Products[0]
	assert.Equal(t, "p1", charizard.ID)
	assert.Equal(t, 320.5, charizard.Price)
	require.NotNil(t, charizard.SetInfo)
	assert.Equal(t, "Base Set", charizard.SetInfo.Name)
	require.NotNil(t, charizard.Images)
	assert.NotEmpty(t, charizard.Images.Large)

	require.Len(t, fixtures.Collections, 1)
	assert.Equal(t, "c1", fixtures.Collections[0].ID)
	assert.True(t, fixtures.Collections[0].IsFavorite)
	require.Len(t, fixtures.Collections[0].Cards, 1)
	assert.Equal(t, "p1", fixtures.Collections[0].Cards[0].ProductID)

	assert.Equal(t, []string{"p1", "p2"}, fixtures.Inventory["u1"])
}

// newStubClient spins up the stub server and points a real marketplace
// client at it, exercising the full wire format both ways.
func newStubClient(t *testing.T) *marketplace.Client {
	t.Helper()

	fixtures, err := DefaultFixtures()
	require.NoError(t, err)

	server := httptest.NewServer(New(fixtures).Handler())
	t.Cleanup(server.Close)

	client, err := marketplace.NewClient(marketplace.Config{BaseURL: server.URL},
		httpclient.ConnectionPoolConfig{}, httpclient.HystrixResiliencyConfig{})
	require.NoError(t, err)
	return client
}

func TestStub_UserEndpoints(t *testing.T) {
	client := newStubClient(t)
	ctx := context.Background()

	user, err := client.FetchUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ashk", user.Username)

	_, err = client.FetchUser(ctx, "missing")
	require.Error(t, err)
	apiErr := &marketplace.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "user not found", apiErr.Message)

	location := "Vermilion City"
	updated, err := client.UpdateUser(ctx, "u1", types.UserPatch{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Vermilion City", updated.Location)
	assert.Equal(t, "ashk", updated.Username, "fields outside the patch survive")
}

func TestStub_ProductEndpoints(t *testing.T) {
	client := newStubClient(t)
	ctx := context.Background()

	products, err := client.FetchAllProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)

	product, err := client.FetchProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Charizard", product.Name)

	created, err := client.CreateProduct(ctx, types.Product{
		Name:        "Blastoise",
		ProductType: "card",
		Price:       180.0,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	fetched, err := client.FetchProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blastoise", fetched.Name)

	_, err = client.CreateProduct(ctx, types.Product{})
	require.Error(t, err, "a product without a name is rejected")
}

func TestStub_CollectionLifecycle(t *testing.T) {
	client := newStubClient(t)
	ctx := context.Background()

	collections, err := client.FetchUserCollections(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, collections, 1)

	created, err := client.CreateCollection(ctx, types.Collection{
		Name:    "Trade Targets",
		Cards:   []types.CollectionItem{},
		OwnerID: "u1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.CardCount)
	assert.NotEmpty(t, created.CreatedAt)

	updated, err := client.AddCardToCollection(ctx, created.ID, "p2")
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CardCount)
	require.Len(t, updated.Cards, 1)
	assert.Equal(t, "p2", updated.Cards[0].ProductID)

	// adding the same card twice is a conflict
	_, err = client.AddCardToCollection(ctx, created.ID, "p2")
	require.Error(t, err)
	apiErr := &marketplace.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)

	contains, err := client.CardInCollection(ctx, created.ID, "p2")
	require.NoError(t, err)
	assert.True(t, contains)

	require.NoError(t, client.RemoveCardFromCollection(ctx, created.ID, "p2"))

	contains, err = client.CardInCollection(ctx, created.ID, "p2")
	require.NoError(t, err)
	assert.False(t, contains)

	favored, err := client.ToggleFavorite(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, favored.IsFavorite)

	require.NoError(t, client.DeleteCollection(ctx, created.ID))

	collections, err = client.FetchUserCollections(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, collections, 1, "only the seeded collection remains")
}

func TestStub_InventoryLifecycle(t *testing.T) {
	client := newStubClient(t)
	ctx := context.Background()

	inventory, err := client.FetchInventory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, inventory, 2)
	assert.Equal(t, "Charizard", inventory[0].Name)

	require.NoError(t, client.AddProductToInventory(ctx, "u1", "p3"))
	// repeat association stays idempotent
	require.NoError(t, client.AddProductToInventory(ctx, "u1", "p3"))

	inventory, err = client.FetchInventory(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, inventory, 3)

	require.NoError(t, client.RemoveProductFromInventory(ctx, "u1", "p1"))

	inventory, err = client.FetchInventory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, inventory, 2)
	for _, p := range inventory {
		assert.NotEqual(t, "p1", p.ID)
	}

	err = client.AddProductToInventory(ctx, "u1", "missing")
	require.Error(t, err)
	apiErr := &marketplace.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "product not found", apiErr.Message)
}
