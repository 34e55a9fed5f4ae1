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

// FetchUserCollections returns every collection owned by the user.
func (mc *Client) FetchUserCollections(ctx context.Context, userID string) ([]types.Collection, error) {
	log := logger.Logger(ctx).WithField("userID", userID)

	body, _, err := mc.sendRequest(ctx, http.MethodGet,
		"/collections/user/"+url.PathEscape(userID), nil, "FetchUserCollections")
	if err != nil {
		log.WithError(err).Error("error fetching collections")
		return nil, err
	}

	var collections []types.Collection
	if err := json.Unmarshal(body, &collections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collections: %w", err)
	}

	log.WithField("count", len(collections)).Debug("fetched collections")
	return collections, nil
}

// CreateCollection creates a collection and returns the server's object,
// which carries the assigned id.
func (mc *Client) CreateCollection(ctx context.Context, collection types.Collection) (*types.Collection, error) {
	log := logger.Logger(ctx).WithField("name", collection.Name)

	body, _, err := mc.sendRequest(ctx, http.MethodPost,
		"/collections", collection, "CreateCollection")
	if err != nil {
		log.WithError(err).Error("error creating collection")
		return nil, err
	}

	created := &types.Collection{}
	if err := json.Unmarshal(body, created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection: %w", err)
	}

	log.WithField("collectionID", created.ID).Info("collection created")
	return created, nil
}

// ToggleFavorite flips the favorite flag and returns the updated collection.
func (mc *Client) ToggleFavorite(ctx context.Context, collectionID string) (*types.Collection, error) {
	log := logger.Logger(ctx).WithField("collectionID", collectionID)

	body, _, err := mc.sendRequest(ctx, http.MethodPatch,
		"/collections/"+url.PathEscape(collectionID)+"/toggle-favorite", nil, "ToggleFavorite")
	if err != nil {
		log.WithError(err).Error("error toggling favorite")
		return nil, err
	}

	updated := &types.Collection{}
	if err := json.Unmarshal(body, updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection: %w", err)
	}
	return updated, nil
}

// DeleteCollection deletes a collection. The response body, if any, is
// ignored.
func (mc *Client) DeleteCollection(ctx context.Context, collectionID string) error {
	log := logger.Logger(ctx).WithField("collectionID", collectionID)

	_, _, err := mc.sendRequest(ctx, http.MethodDelete,
		"/collections/"+url.PathEscape(collectionID), nil, "DeleteCollection")
	if err != nil {
		log.WithError(err).Error("error deleting collection")
		return err
	}

	log.Info("collection deleted")
	return nil
}

// AddCardToCollection adds a card and returns the updated collection; the
// server's card_count is authoritative.
func (mc *Client) AddCardToCollection(ctx context.Context, collectionID, cardID string) (*types.Collection, error) {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"collectionID": collectionID,
		"cardID":       cardID,
	})

	payload := map[string]string{"cardId": cardID}
	body, _, err := mc.sendRequest(ctx, http.MethodPost,
		"/collections/"+url.PathEscape(collectionID)+"/add", payload, "AddCardToCollection")
	if err != nil {
		log.WithError(err).Error("error adding card to collection")
		return nil, err
	}

	updated := &types.Collection{}
	if err := json.Unmarshal(body, updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection: %w", err)
	}
	return updated, nil
}

// RemoveCardFromCollection removes a card. The server returns no useful
// body; callers patch their local copy.
func (mc *Client) RemoveCardFromCollection(ctx context.Context, collectionID, cardID string) error {
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"collectionID": collectionID,
		"cardID":       cardID,
	})

	_, _, err := mc.sendRequest(ctx, http.MethodDelete,
		"/collections/"+url.PathEscape(collectionID)+"/remove/"+url.PathEscape(cardID),
		nil, "RemoveCardFromCollection")
	if err != nil {
		log.WithError(err).Error("error removing card from collection")
		return err
	}
	return nil
}

// CardInCollection checks card membership.
func (mc *Client) CardInCollection(ctx context.Context, collectionID, cardID string) (bool, error) {
	body, _, err := mc.sendRequest(ctx, http.MethodGet,
		"/collections/"+url.PathEscape(collectionID)+"/contains/"+url.PathEscape(cardID),
		nil, "CardInCollection")
	if err != nil {
		return false, err
	}

	result := &types.ContainsResponse{}
	if err := json.Unmarshal(body, result); err != nil {
		return false, fmt.Errorf("failed to unmarshal contains response: %w", err)
	}
	return result.Contains, nil
}
