/*
Copyright 2026 Nscale.

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

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Credentials is the request body of the authentication endpoint.
type Credentials struct {
	Username string `json:"userName"`
	Password string `json:"password"`
}

// StoryPayload is the request body for create and edit.
// A nil URL is omitted from the request entirely.
type StoryPayload struct {
	Title       string  `json:"Title"`
	Description string  `json:"Description"`
	URL         *string `json:"Url,omitempty"`
}

// APIResponse is the body most story endpoints answer with.
type APIResponse struct {
	Msg     string  `json:"msg"`
	StoryID *string `json:"storyId,omitempty"`
}

type authResponse struct {
	AccessToken string `json:"accessToken"`
}

// Result is a completed HTTP exchange.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string
}

// Message decodes the body as an APIResponse.
func (r *Result) Message() (*APIResponse, error) {
	var out APIResponse
	if err := json.Unmarshal(r.Body, &out); err != nil {
		return nil, fmt.Errorf("unmarshaling response body %q: %w", string(r.Body), err)
	}

	return &out, nil
}

// Shape classifies the body without decoding it into a Go value.
func (r *Result) Shape() Shape {
	return ClassifyJSON(r.Body)
}
