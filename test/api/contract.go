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
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

// ErrContractViolation is returned when a response does not match the
// documented API.
var ErrContractViolation = errors.New("response violates API contract")

//go:embed storyspoiler.yaml
var contractDocument []byte

// ContractValidator checks responses against the embedded OpenAPI document.
type ContractValidator struct {
	router routers.Router
}

//nolint:gochecknoglobals
var loadContractValidator = sync.OnceValues(func() (*ContractValidator, error) {
	return NewContractValidator(context.Background(), contractDocument)
})

// LoadContractValidator returns the shared validator for the embedded document.
func LoadContractValidator() (*ContractValidator, error) {
	return loadContractValidator()
}

// NewContractValidator parses and validates an OpenAPI document.
func NewContractValidator(ctx context.Context, document []byte) (*ContractValidator, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("loading API contract: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating API contract: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building API contract router: %w", err)
	}

	return &ContractValidator{
		router: router,
	}, nil
}

// ValidateResponse checks the status and body of result against the
// operation req was routed to. Undocumented status codes are violations.
func (v *ContractValidator) ValidateResponse(ctx context.Context, req *http.Request, result *Result) error {
	route, pathParams, err := v.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("%w: no documented operation for %s %s: %w", ErrContractViolation, req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: result.StatusCode,
		Header: result.Header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
		},
	}

	input.SetBodyBytes(result.Body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%w: %w", ErrContractViolation, err)
	}

	return nil
}
