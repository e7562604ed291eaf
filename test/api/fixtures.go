/*
Copyright 2024-2025 the Unikorn Authors.
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
	"k8s.io/utils/ptr"
)

// Seed values used by the scenarios.
const (
	SeedTitle            = "Test Story"
	SeedEditedTitle      = "Test Story Edited"
	SeedDescription      = "Description2234"
	SeedNonExistingTitle = "Test Story with non existing Id"
	SeedPlainDescription = "Description"

	// NonExistingStoryID is never issued by the service.
	NonExistingStoryID = "non-existing-id"
)

// StoryPayloadBuilder builds story payloads for testing.
type StoryPayloadBuilder struct {
	payload StoryPayload
}

// NewStoryPayload creates a builder holding the seed story with an empty URL.
func NewStoryPayload() *StoryPayloadBuilder {
	return &StoryPayloadBuilder{
		payload: StoryPayload{
			Title:       SeedTitle,
			Description: SeedDescription,
			URL:         ptr.To(""),
		},
	}
}

// WithTitle sets the story title.
func (b *StoryPayloadBuilder) WithTitle(title string) *StoryPayloadBuilder {
	b.payload.Title = title
	return b
}

// WithDescription sets the story description.
func (b *StoryPayloadBuilder) WithDescription(desc string) *StoryPayloadBuilder {
	b.payload.Description = desc
	return b
}

// WithURL sets the story URL.
func (b *StoryPayloadBuilder) WithURL(url string) *StoryPayloadBuilder {
	b.payload.URL = ptr.To(url)
	return b
}

// WithoutURL omits the URL field from the request.
func (b *StoryPayloadBuilder) WithoutURL() *StoryPayloadBuilder {
	b.payload.URL = nil
	return b
}

// Build returns the completed story payload.
func (b *StoryPayloadBuilder) Build() StoryPayload {
	return b.payload
}

// EditedStoryPayload is the payload the edit scenario sends.
func EditedStoryPayload() StoryPayload {
	return NewStoryPayload().
		WithTitle(SeedEditedTitle).
		Build()
}

// MissingRequiredFieldsPayload carries an empty title and description and no URL.
func MissingRequiredFieldsPayload() StoryPayload {
	return NewStoryPayload().
		WithTitle("").
		WithDescription("").
		WithoutURL().
		Build()
}

// NonExistingStoryPayload is sent when editing NonExistingStoryID.
func NonExistingStoryPayload() StoryPayload {
	return NewStoryPayload().
		WithTitle(SeedNonExistingTitle).
		WithDescription(SeedPlainDescription).
		Build()
}
