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

	"github.com/sirupsen/logrus"

	"github.com/tradebinder/tradebinder/pkg/logger"
	"github.com/tradebinder/tradebinder/pkg/types"
)

// FetchInventory returns the user's inventory, unwrapped from the
// {"inventory": [...]} envelope.
func (mc *Client) FetchInventory(ctx context.Context, userID string) ([]types.Product, error) {
	log := logger.Logger(ctx).WithField("userID", userID)

	body, _, err := mc.sendRequest(ctx, http.MethodGet,
		"/users/"+url.PathEscape(userID)+"/inventory", nil, "FetchInventory")
	if err != nil {
		log.WithError(err).Error("error fetching inventory")
		return nil, err
	}

	response := &types.InventoryResponse{}
	if err := json.Unmarshal(body, response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}

	log.WithField("count", len(response.Inventory)).Debug("fetched inventory")
	return response.Inventory, nil
}

// AddProductToInventory associates an existing product with the user's
// inventory.
func (mc *Client) AddProductToInventory(ctx context.Context, userID, productID string) error {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"userID":    userID,
		"productID": productID,
	})

	_, _, err := mc.sendRequest(ctx, http.MethodPatch,
		"/users/"+url.PathEscape(userID)+"/inventory/"+url.PathEscape(productID),
		nil, "AddProductToInventory")
	if err != nil {
		log.WithError(err).Error("error adding product to inventory")
		return err
	}

	log.Info("product added to inventory")
	return nil
}

// RemoveProductFromInventory removes the association; the product itself is
// untouched.
func (mc *Client) RemoveProductFromInventory(ctx context.Context, userID, productID string) error {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"userID":    userID,
		"productID": productID,
	})

	_, _, err := mc.sendRequest(ctx, http.MethodDelete,
		"/users/"+url.PathEscape(userID)+"/inventory/"+url.PathEscape(productID),
		nil, "RemoveProductFromInventory")
	if err != nil {
		log.WithError(err).Error("error removing product from inventory")
		return err
	}

	log.Info("product removed from inventory")
	return nil
}
