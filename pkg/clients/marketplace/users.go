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

// FetchUser fetches a full user profile by id.
func (mc *Client) FetchUser(ctx context.Context, userID string) (*types.User, error) {
	log := logger.Logger(ctx).WithField("userID", userID)

	body, _, err := mc.sendRequest(ctx, http.MethodGet,
		"/users/"+url.PathEscape(userID), nil, "FetchUser")
	if err != nil {
		log.WithError(err).Error("error fetching user")
		return nil, err
	}

	user := &types.User{}
	if err := json.Unmarshal(body, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial profile update and returns the updated user.
func (mc *Client) UpdateUser(ctx context.Context, userID string, patch types.UserPatch) (*types.User, error) {
	log := logger.Logger(ctx).WithField("userID", userID)

	body, _, err := mc.sendRequest(ctx, http.MethodPatch,
		"/users/"+url.PathEscape(userID), patch, "UpdateUser")
	if err != nil {
		log.WithError(err).Error("error updating user")
		return nil, err
	}

	user := &types.User{}
	if err := json.Unmarshal(body, user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	log.Info("user profile updated")
	return user, nil
}
