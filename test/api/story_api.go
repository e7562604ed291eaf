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

//go:generate go tool mockgen -source=story_api.go -destination=mock/story_api.go -package=mock

package api

import (
	"context"

	"github.com/go-logr/logr"
)

// StoryAPI is the surface the scenarios drive. Close releases the
// connections the implementation holds and is called once per scenario.
type StoryAPI interface {
	CreateStory(ctx context.Context, payload StoryPayload) (*Result, error)
	EditStory(ctx context.Context, storyID string, payload StoryPayload) (*Result, error)
	ListStories(ctx context.Context) (*Result, error)
	DeleteStory(ctx context.Context, storyID string) (*Result, error)
	Close()
}

// ConnectFunc performs scenario setup and returns an authenticated StoryAPI.
type ConnectFunc func(ctx context.Context) (StoryAPI, error)

// Connector returns a ConnectFunc that authenticates with config on every call.
func Connector(config *TestConfig, log logr.Logger) ConnectFunc {
	return func(ctx context.Context) (StoryAPI, error) {
		client, err := Connect(ctx, config, log)
		if err != nil {
			return nil, err
		}

		return client, nil
	}
}
