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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/storyspoiler/apitest/test/api"
)

var _ = Describe("Story Spoiler", Ordered, ContinueOnFailure, Label("integration"), func() {
	var (
		client *api.APIClient
		state  *api.State
	)

	BeforeAll(func() {
		state = &api.State{}
	})

	BeforeEach(func(ctx SpecContext) {
		var err error

		client, err = api.Connect(ctx, config, GinkgoLogr)
		if err != nil {
			AbortSuite(err.Error())
		}

		DeferCleanup(client.Close)
	})

	for _, scenario := range api.Scenarios() {
		It(scenario.Description, Label(scenario.Name), func(ctx SpecContext) {
			if scenario.RequiresStory && state.StoryID == "" {
				Skip(api.ErrMissingStoryID.Error())
			}

			scenario.Run(ctx, Default, client, state)
		})
	}

	// Creates are never cleaned up and bad credentials are never probed
	// against the live service.
	PIt("should reject invalid credentials")
})
