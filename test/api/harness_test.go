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
package api_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/storyspoiler/apitest/test/api"
	"github.com/storyspoiler/apitest/test/api/fake"
)

// newService starts an in-memory service that accepts the default account.
func newService(options fake.Options) (*fake.Server, *httptest.Server) {
	if options.Username == "" {
		options.Username = api.DefaultUsername
		options.Password = api.DefaultPassword
	}

	service := fake.New(options)

	server := httptest.NewServer(service)
	DeferCleanup(server.Close)

	return service, server
}

// newHandlerServer starts a server answering with a hand written handler.
func newHandlerServer(handler http.Handler) *httptest.Server {
	server := httptest.NewServer(handler)
	DeferCleanup(server.Close)

	return server
}

func testConfig(baseURL string) *api.TestConfig {
	return &api.TestConfig{
		BaseURL:          baseURL,
		Username:         api.DefaultUsername,
		Password:         api.DefaultPassword,
		RequestTimeout:   5 * time.Second,
		ValidateContract: true,
	}
}

var _ = Describe("Story scenarios", Ordered, ContinueOnFailure, func() {
	var (
		service *fake.Server
		config  *api.TestConfig
		state   *api.State
		client  *api.APIClient
	)

	BeforeAll(func() {
		var server *httptest.Server

		service, server = newService(fake.Options{})
		config = testConfig(server.URL)
		state = &api.State{}
	})

	BeforeEach(func(ctx SpecContext) {
		var err error

		client, err = api.Connect(ctx, config, GinkgoLogr)
		Expect(err).NotTo(HaveOccurred())

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

	It("should leave the deleted story unreachable", func(ctx SpecContext) {
		Expect(state.StoryID).NotTo(BeEmpty())

		for _, story := range service.Stories() {
			Expect(story.ID).NotTo(Equal(state.StoryID))
		}

		result, err := client.EditStory(ctx, state.StoryID, api.EditedStoryPayload())
		Expect(err).NotTo(HaveOccurred())
		Expect(result.StatusCode).To(Equal(http.StatusNotFound))

		result, err = client.DeleteStory(ctx, state.StoryID)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.StatusCode).To(Equal(http.StatusBadRequest))

		body, err := result.Message()
		Expect(err).NotTo(HaveOccurred())
		Expect(body.Msg).To(Equal(api.MessageDeleteFailed))
	})
})

var _ = Describe("Authentication", func() {
	var config *api.TestConfig

	BeforeEach(func() {
		_, server := newService(fake.Options{})
		config = testConfig(server.URL)
	})

	It("should issue a JWT for the configured account", func(ctx SpecContext) {
		client, err := api.NewAPIClient(config, GinkgoLogr)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(client.Close)

		token, err := client.Authenticate(ctx, config.Credentials())
		Expect(err).NotTo(HaveOccurred())

		info, ok := api.InspectToken(token)
		Expect(ok).To(BeTrue())
		Expect(info.Subject).To(Equal(api.DefaultUsername))
		Expect(info.ExpiresAt).To(BeTemporally(">", time.Now()))
	})

	It("should fail setup with the wrong password", func(ctx SpecContext) {
		config.Password = "wrong"

		client, err := api.Connect(ctx, config, GinkgoLogr)
		Expect(err).To(MatchError(api.ErrAuthentication))
		Expect(err.Error()).To(ContainSubstring("401"))
		Expect(client).To(BeNil())
	})

	It("should reject requests without a bearer token", func(ctx SpecContext) {
		client, err := api.NewAPIClient(config, GinkgoLogr)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(client.Close)

		result, err := client.ListStories(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.StatusCode).To(Equal(http.StatusUnauthorized))
	})

	It("should reject an expired token", func(ctx SpecContext) {
		_, server := newService(fake.Options{TokenLifetime: -time.Minute})

		client, err := api.Connect(ctx, testConfig(server.URL), GinkgoLogr)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(client.Close)

		result, err := client.ListStories(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.StatusCode).To(Equal(http.StatusUnauthorized))
	})

	DescribeTable("should treat a missing token as fatal",
		func(ctx SpecContext, body string) {
			server := newHandlerServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))

			config := testConfig(server.URL)
			config.ValidateContract = false

			_, err := api.Connect(ctx, config, GinkgoLogr)
			Expect(err).To(MatchError(api.ErrAuthentication))
		},
		Entry("blank", `{"accessToken":"  "}`),
		Entry("null", `{"accessToken":null}`),
		Entry("absent", `{}`),
		Entry("not JSON", `token`),
	)
})

var _ = Describe("Contract validation", func() {
	var config *api.TestConfig

	BeforeEach(func() {
		mux := http.NewServeMux()

		mux.HandleFunc("POST /api/Story/Create", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"msg":1}`))
		})

		mux.HandleFunc("GET /api/Story/All", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})

		config = testConfig(newHandlerServer(mux).URL)
	})

	It("should flag a body that does not match the schema", func(ctx SpecContext) {
		client, err := api.NewAPIClient(config, GinkgoLogr)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(client.Close)

		result, err := client.CreateStory(ctx, api.NewStoryPayload().Build())
		Expect(err).To(MatchError(api.ErrContractViolation))
		Expect(result).NotTo(BeNil())
		Expect(result.StatusCode).To(Equal(http.StatusCreated))
	})

	It("should flag an undocumented status", func(ctx SpecContext) {
		client, err := api.NewAPIClient(config, GinkgoLogr)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(client.Close)

		_, err = client.ListStories(ctx)
		Expect(err).To(MatchError(api.ErrContractViolation))
	})

	It("should only report status when disabled", func(ctx SpecContext) {
		config.ValidateContract = false

		client, err := api.NewAPIClient(config, GinkgoLogr)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(client.Close)

		result, err := client.ListStories(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.StatusCode).To(Equal(http.StatusTeapot))
	})
})

var _ = Describe("Runner", func() {
	var config *api.TestConfig

	BeforeEach(func() {
		_, server := newService(fake.Options{})
		config = testConfig(server.URL)
	})

	It("should pass every scenario against a conforming service", func(ctx SpecContext) {
		report := api.NewRunner(api.Connector(config, GinkgoLogr), GinkgoLogr).Run(ctx, api.Scenarios())

		Expect(report.Failed()).To(BeFalse())
		Expect(report.Count(api.StatusPassed)).To(Equal(len(api.Scenarios())))
	})

	It("should run a selection with its prerequisite", func(ctx SpecContext) {
		scenarios, err := api.SelectScenarios(api.Scenarios(), []string{api.ScenarioEdit})
		Expect(err).NotTo(HaveOccurred())

		report := api.NewRunner(api.Connector(config, GinkgoLogr), GinkgoLogr).Run(ctx, scenarios)

		Expect(report.Failed()).To(BeFalse())
		Expect(report.Outcomes).To(HaveLen(2))
		Expect(report.Outcomes[0].Scenario).To(Equal(api.ScenarioCreate))
	})

	It("should abort when authentication fails", func(ctx SpecContext) {
		config.Password = "wrong"

		report := api.NewRunner(api.Connector(config, GinkgoLogr), GinkgoLogr).Run(ctx, api.Scenarios())

		Expect(report.Failed()).To(BeTrue())
		Expect(report.Aborted).To(MatchError(api.ErrAuthentication))
		Expect(report.Count(api.StatusNotRun)).To(Equal(len(api.Scenarios())))
	})
})
