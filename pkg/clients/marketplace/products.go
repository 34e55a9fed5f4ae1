/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tradebinder/tradebinder/pkg/logger"
	"github.com/tradebinder/tradebinder/pkg/types"
)

// FetchAllProducts lists the whole product catalog.
func (mc *Client) FetchAllProducts(ctx context.Context) ([]types.Product, error) {
	log := logger.Logger(ctx)

	body, _, err := mc.sendRequest(ctx, http.MethodGet, "/products", nil, "FetchAllProducts")
	if err != nil {
		log.WithError(err).Error("error fetching products")
		return nil, err
	}

	var products []types.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", err)
	}

	log.WithField("count", len(products)).Debug("fetched products")
	return products, nil
}

// FetchProduct fetches a single product by id.
func (mc *Client) FetchProduct(ctx context.Context, productID string) (*types.Product, error) {
	body, _, err := mc.sendRequest(ctx, http.MethodGet,
		"/products/"+url.PathEscape(productID), nil, "FetchProduct")
	if err != nil {
		logger.Logger(ctx).WithField("productID", productID).WithError(err).Error("error fetching product")
		return nil, err
	}

	product := &types.Product{}
	if err := json.Unmarshal(body, product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return product, nil
}

// CreateProduct creates a product. Product existence is distinct from
// inventory membership; see AddProductToInventory.
func (mc *Client) CreateProduct(ctx context.Context, product types.Product) (*types.Product, error) {
	log := logger.Logger(ctx).WithField("name", product.Name)

	body, _, err := mc.sendRequest(ctx, http.MethodPost, "/products", product, "CreateProduct")
	if err != nil {
		log.WithError(err).Error("error creating product")
		return nil, err
	}

	created := &types.Product{}
	if err := json.Unmarshal(body, created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	log.WithField("productID", created.ID).Info("product created")
	return created, nil
}
