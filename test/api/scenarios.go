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

//nolint:revive,staticcheck // dot imports are standard for Gomega matchers
package api

import (
	"context"
	"net/http"

	. "github.com/onsi/gomega"
)

// Messages the service answers with.
const (
	MessageCreated      = "Successfully created!"
	MessageEdited       = "Successfully edited"
	MessageDeleted      = "Deleted successfully!"
	MessageNotFound     = "No spoilers..."
	MessageDeleteFailed = "Unable to delete this story spoiler!"
)

// Scenario names.
const (
	ScenarioCreate              = "create"
	ScenarioEdit                = "edit"
	ScenarioList                = "list"
	ScenarioDelete              = "delete"
	ScenarioCreateMissingFields = "create-missing-fields"
	ScenarioEditNonExisting     = "edit-non-existing"
	ScenarioDeleteNonExisting   = "delete-non-existing"
)

// State is carried from one scenario to the next.
type State struct {
	// StoryID is written by the create scenario.
	StoryID string
}

// Scenario is one ordered HTTP call plus its assertions. Run reports
// failures through g; it must not be called when RequiresStory is set and
// the state holds no story ID.
type Scenario struct {
	Name          string
	Description   string
	Order         int
	RequiresStory bool
	Run           func(ctx context.Context, g Gomega, api StoryAPI, state *State)
}

// Scenarios returns the suite in execution order.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:        ScenarioCreate,
			Description: "should create a story with the required fields",
			Order:       1,
			Run:         createStory,
		},
		{
			Name:          ScenarioEdit,
			Description:   "should edit the created story",
			Order:         2,
			RequiresStory: true,
			Run:           editStory,
		},
		{
			Name:        ScenarioList,
			Description: "should list a non-empty array of stories",
			Order:       3,
			Run:         listStories,
		},
		{
			Name:          ScenarioDelete,
			Description:   "should delete the created story",
			Order:         4,
			RequiresStory: true,
			Run:           deleteStory,
		},
		{
			Name:        ScenarioCreateMissingFields,
			Description: "should reject a story without the required fields",
			Order:       5,
			Run:         createStoryWithoutRequiredFields,
		},
		{
			Name:        ScenarioEditNonExisting,
			Description: "should not find a non-existing story to edit",
			Order:       6,
			Run:         editNonExistingStory,
		},
		{
			Name:        ScenarioDeleteNonExisting,
			Description: "should refuse to delete a non-existing story",
			Order:       7,
			Run:         deleteNonExistingStory,
		},
	}
}

// expectStatus fails unless the call succeeded at the transport level and
// returned status.
func expectStatus(g Gomega, result *Result, err error, status int) {
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result).NotTo(BeNil())
	g.Expect(result.StatusCode).To(Equal(status), "unexpected status, body: %s (trace ID: %s)", string(result.Body), result.TraceID)
}

// expectMessage decodes the body and compares its msg field.
func expectMessage(g Gomega, result *Result, message string) *APIResponse {
	body, err := result.Message()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(body.Msg).To(Equal(message))

	return body
}

func createStory(ctx context.Context, g Gomega, api StoryAPI, state *State) {
	result, err := api.CreateStory(ctx, NewStoryPayload().Build())
	expectStatus(g, result, err, http.StatusCreated)

	body := expectMessage(g, result, MessageCreated)
	g.Expect(body.StoryID).NotTo(BeNil(), "story ID missing from response")
	g.Expect(*body.StoryID).NotTo(BeEmpty(), "story ID missing from response")

	state.StoryID = *body.StoryID
}

func editStory(ctx context.Context, g Gomega, api StoryAPI, state *State) {
	result, err := api.EditStory(ctx, state.StoryID, EditedStoryPayload())
	expectStatus(g, result, err, http.StatusOK)
	expectMessage(g, result, MessageEdited)
}

func listStories(ctx context.Context, g Gomega, api StoryAPI, _ *State) {
	result, err := api.ListStories(ctx)
	expectStatus(g, result, err, http.StatusOK)

	shape := result.Shape()
	g.Expect(shape.Kind).To(Equal(ShapeArray), "body: %s", string(result.Body))
	g.Expect(shape.Len).To(BeNumerically(">", 0))
}

func deleteStory(ctx context.Context, g Gomega, api StoryAPI, state *State) {
	result, err := api.DeleteStory(ctx, state.StoryID)
	expectStatus(g, result, err, http.StatusOK)
	expectMessage(g, result, MessageDeleted)
}

func createStoryWithoutRequiredFields(ctx context.Context, g Gomega, api StoryAPI, _ *State) {
	result, err := api.CreateStory(ctx, MissingRequiredFieldsPayload())
	expectStatus(g, result, err, http.StatusBadRequest)
}

func editNonExistingStory(ctx context.Context, g Gomega, api StoryAPI, _ *State) {
	result, err := api.EditStory(ctx, NonExistingStoryID, NonExistingStoryPayload())
	expectStatus(g, result, err, http.StatusNotFound)
	expectMessage(g, result, MessageNotFound)
}

func deleteNonExistingStory(ctx context.Context, g Gomega, api StoryAPI, _ *State) {
	result, err := api.DeleteStory(ctx, NonExistingStoryID)
	expectStatus(g, result, err, http.StatusBadRequest)
	expectMessage(g, result, MessageDeleteFailed)
}
