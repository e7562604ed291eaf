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

// Package fake implements an in-memory StorySpoiler service. It reproduces
// the status codes and messages the real service answers with so the test
// harness can be exercised without network access.
package fake

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	messageCreated      = "Successfully created!"
	messageEdited       = "Successfully edited"
	messageDeleted      = "Deleted successfully!"
	messageNotFound     = "No spoilers..."
	messageDeleteFailed = "Unable to delete this story spoiler!"
	messageUnauthorized = "Invalid username or password!"
)

var errInvalidToken = errors.New("invalid bearer token")

// Options configures the fake service.
type Options struct {
	// Username and Password are the only accepted credentials.
	Username string
	Password string
	// SigningKey signs issued tokens; a random key is used when empty.
	SigningKey []byte
	// TokenLifetime defaults to an hour.
	TokenLifetime time.Duration
}

// Server is an http.Handler serving the StorySpoiler API.
type Server struct {
	options  Options
	stories  *store
	validate *validator.Validate
	router   chi.Router
	now      func() time.Time
}

var _ http.Handler = (*Server)(nil)

// New returns a server with an empty store.
func New(options Options) *Server {
	if len(options.SigningKey) == 0 {
		options.SigningKey = []byte(uuid.NewString() + uuid.NewString())
	}

	if options.TokenLifetime == 0 {
		options.TokenLifetime = time.Hour
	}

	s := &Server{
		options:  options,
		stories:  newStore(),
		validate: validator.New(),
		now:      time.Now,
	}

	r := chi.NewRouter()

	r.Post("/api/User/Authentication", s.authenticate)

	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)

		r.Post("/api/Story/Create", s.createStory)
		r.Put("/api/Story/Edit/{storyID}", s.editStory)
		r.Get("/api/Story/All", s.listStories)
		r.Delete("/api/Story/Delete/{storyID}", s.deleteStory)
	})

	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Stories returns a snapshot of the stored stories.
func (s *Server) Stories() []Story {
	return s.stories.list()
}

// IssueToken returns a token the server accepts, for the given subject.
func (s *Server) IssueToken(subject string) (string, error) {
	now := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.options.TokenLifetime)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.options.SigningKey)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}

	return signed, nil
}

func (s *Server) verifyToken(token string) error {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return s.options.SigningKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidToken, err)
	}

	if !parsed.Valid {
		return errInvalidToken
	}

	return nil
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || s.verifyToken(token) != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type credentials struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type storyRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	URL         string `json:"url"`
}

type messageResponse struct {
	Msg     string  `json:"msg"`
	StoryID *string `json:"storyId"`
}

type validationResponse struct {
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, &messageResponse{Msg: message})
}

// writeValidationError answers 400 in the shape ASP.NET uses for model
// validation failures.
func writeValidationError(w http.ResponseWriter, err error) {
	body := &validationResponse{
		Title:  "One or more validation errors occurred.",
		Status: http.StatusBadRequest,
		Errors: map[string][]string{},
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fe := range fieldErrors {
			body.Errors[fe.Field()] = append(body.Errors[fe.Field()], fmt.Sprintf("The %s field is required.", fe.Field()))
		}
	} else {
		body.Errors["body"] = []string{err.Error()}
	}

	w.Header().Set("Content-Type", "application/problem+json; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)

	_ = json.NewEncoder(w).Encode(body)
}

// decode reads and validates a JSON request body into out.
func (s *Server) decode(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}

	return s.validate.Struct(out)
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) {
	var request credentials
	if err := s.decode(r, &request); err != nil {
		writeValidationError(w, err)
		return
	}

	if request.UserName != s.options.Username || request.Password != s.options.Password {
		writeMessage(w, http.StatusUnauthorized, messageUnauthorized)
		return
	}

	token, err := s.IssueToken(request.UserName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, &tokenResponse{AccessToken: token})
}

func (s *Server) createStory(w http.ResponseWriter, r *http.Request) {
	var request storyRequest
	if err := s.decode(r, &request); err != nil {
		writeValidationError(w, err)
		return
	}

	story := s.stories.create(request.Title, request.Description, request.URL)

	writeJSON(w, http.StatusCreated, &messageResponse{Msg: messageCreated, StoryID: &story.ID})
}

func (s *Server) editStory(w http.ResponseWriter, r *http.Request) {
	var request storyRequest
	if err := s.decode(r, &request); err != nil {
		writeValidationError(w, err)
		return
	}

	if !s.stories.update(chi.URLParam(r, "storyID"), request.Title, request.Description, request.URL) {
		writeMessage(w, http.StatusNotFound, messageNotFound)
		return
	}

	writeMessage(w, http.StatusOK, messageEdited)
}

func (s *Server) listStories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.stories.list())
}

func (s *Server) deleteStory(w http.ResponseWriter, r *http.Request) {
	if !s.stories.delete(chi.URLParam(r, "storyID")) {
		writeMessage(w, http.StatusBadRequest, messageDeleteFailed)
		return
	}

	writeMessage(w, http.StatusOK, messageDeleted)
}
