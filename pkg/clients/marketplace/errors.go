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
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the marketplace API, carrying the
// most readable message the response offered.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// decodeAPIError builds an APIError from a response body. Message
// preference order: JSON `message` field, raw body text, "HTTP <status>".
func decodeAPIError(statusCode int, body []byte) *APIError {
	message := strings.TrimSpace(string(body))

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		message = payload.Message
	}

	if message == "" {
		message = fmt.Sprintf("HTTP %d", statusCode)
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}
