// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

// Package validator checks relay API requests before they reach the relay
// core, so that malformed input never costs a ledger round trip.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// Validator validates relay API requests and path parameters.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the relay request rules registered.
func New() *Validator {

	v := &Validator{
		validate: newRequestValidator(),
	}

	return v
}
