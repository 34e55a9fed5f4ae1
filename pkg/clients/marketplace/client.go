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
	"slices"
	"strings"
	"time"

	"github.com/gojek/heimdall/v7"

	"github.com/tradebinder/tradebinder/pkg/request"
	"github.com/tradebinder/tradebinder/pkg/request/httpclient"
)

const backendName = "marketplace"

// Client is the HTTP client for the marketplace REST API.
type Client struct {
	client  heimdall.Doer
	baseURL string
}

// Config holds the connection settings for the marketplace API.
type Config struct {
	BaseURL string `json:"base_url" mapstructure:"base_url"`
}

// NewClient creates a marketplace client with a hystrix-wrapped HTTP client.
func NewClient(cfg Config,
	connectionPoolConfig httpclient.ConnectionPoolConfig,
	hystrixResiliencyConfig httpclient.HystrixResiliencyConfig) (*Client, error) {

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("marketplace configuration is missing required field: BaseURL")
	}

	client, err := httpclient.InitializeClient(
		backendName,
		connectionPoolConfig,
		hystrixResiliencyConfig,
		heimdall.NewRetrier(heimdall.NewConstantBackoff(100*time.Millisecond, 50*time.Millisecond)), // retry logic
		3,
		nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize http client: %w", err)
	}

	return &Client{
		client:  client,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

// sendRequest makes an HTTP request to the marketplace API and enforces the
// 2xx allowlist. Non-2xx responses are decoded into an *APIError.
func (mc *Client) sendRequest(ctx context.Context, method, path string, body interface{},
	methodName string) ([]byte, int, error) {

	var requestBody []byte
	if body != nil {
		var err error
		requestBody, err = json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	req, err := request.NewRequest(ctx, method, mc.baseURL+path, requestBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetHeaders(map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	})

	response, statusCode, err := req.MakeRequest(mc.client, methodName, backendName)
	if err != nil {
		return nil, statusCode, fmt.Errorf("network error: %w", err)
	}

	if !slices.Contains([]int{http.StatusOK, http.StatusCreated, http.StatusNoContent}, statusCode) {
		return response, statusCode, decodeAPIError(statusCode, response)
	}

	return response, statusCode, nil
}
