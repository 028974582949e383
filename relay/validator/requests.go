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

package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/numaan0/proof-mint-blockchain/api/relay"
)

// Field names are mandatory arguments to the `ReportError` method of the
// validator library. Since we only ever surface structured sentinel errors,
// they never reach a client.
const (
	addressField   = "subject_address"
	signatureField = "signature"
	deadlineField  = "deadline"
	nonceField     = "nonce"
)

var (
	addressRegex   = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	signatureRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{130}$`)
	nonceRegex     = regexp.MustCompile(`^[0-9]+$`)
)

func newRequestValidator() *validator.Validate {

	v := validator.New()

	// Register top-level validators for the relay request types. Each
	// validator is registered against a single type, so the type assertion
	// on the provided `validator.StructLevel` is safe.
	v.RegisterStructValidation(syncValidator, relay.SyncRequest{})
	v.RegisterStructValidation(borrowValidator, relay.BorrowRequest{})

	return v
}

// Request validates an API request body against the registered rules and
// returns the sentinel error for the first violation found.
func (v *Validator) Request(request interface{}) error {

	err := v.validate.Struct(request)
	if err == nil {
		return nil
	}

	// InvalidValidationError is returned by the validation library in cases
	// of invalid usage, namely passing a non-struct to `validate.Struct()`.
	_, ok := err.(*validator.InvalidValidationError)
	if ok {
		return relay.ErrInvalidValidation
	}

	// Process validation errors we have found. Return the first one we
	// encounter.
	errs := err.(validator.ValidationErrors)
	msg := errs[0].Tag()

	switch msg {
	case relay.AddressFormat:
		return relay.ErrAddressFormat
	case relay.SignatureFormat:
		return relay.ErrSignatureFormat
	case relay.DeadlineMissing:
		return relay.ErrDeadlineMissing
	case relay.NonceFormat:
		return relay.ErrNonceFormat
	default:
		return fmt.Errorf(msg)
	}
}

// Address validates a subject address given as a path parameter.
func (v *Validator) Address(address string) error {
	if !addressRegex.MatchString(address) {
		return relay.ErrAddressFormat
	}
	return nil
}

func syncValidator(sl validator.StructLevel) {
	req := sl.Current().Interface().(relay.SyncRequest)
	if !addressRegex.MatchString(req.Address) {
		sl.ReportError(req.Address, addressField, addressField, relay.AddressFormat, "")
	}
}

func borrowValidator(sl validator.StructLevel) {
	req := sl.Current().Interface().(relay.BorrowRequest)
	if !addressRegex.MatchString(req.Address) {
		sl.ReportError(req.Address, addressField, addressField, relay.AddressFormat, "")
	}
	if !signatureRegex.MatchString(req.Signature) {
		sl.ReportError(req.Signature, signatureField, signatureField, relay.SignatureFormat, "")
	}
	if req.Deadline == 0 {
		sl.ReportError(req.Deadline, deadlineField, deadlineField, relay.DeadlineMissing, "")
	}
	if req.Nonce != "" && !nonceRegex.MatchString(req.Nonce) {
		sl.ReportError(req.Nonce, nonceField, nonceField, relay.NonceFormat, "")
	}
}
