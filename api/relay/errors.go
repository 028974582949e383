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

package relay

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/numaan0/proof-mint-blockchain/relay/failure"
	"github.com/numaan0/proof-mint-blockchain/service/journal"
)

// Validation tags used by the request validator. Each maps to a sentinel
// error so that handlers and tests can match on the exact reason.
const (
	AddressFormat   = "address_format"
	SignatureFormat = "signature_format"
	DeadlineMissing = "deadline_missing"
	NonceFormat     = "nonce_format"
)

// Sentinel errors for request validation failures.
var (
	ErrInvalidValidation = errors.New("invalid validation request")
	ErrBlockedField      = errors.New("field with this name is not allowed")
	ErrAddressFormat     = errors.New("address must be a 0x-prefixed 20-byte hex string")
	ErrSignatureFormat   = errors.New("signature must be a 0x-prefixed 65-byte hex string")
	ErrDeadlineMissing   = errors.New("deadline must be set and non-zero")
	ErrNonceFormat       = errors.New("nonce must be a decimal integer")
)

// unknownSubjectMessage is the message clients key on when a subject has no
// reputation record.
const unknownSubjectMessage = "User not found"

// badRequest wraps a binding or validation error into a 400 response.
func badRequest(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

// apiError converts an error from the relay core into an HTTP error with the
// appropriate status code and the uniform failure envelope. Rejections keep
// the ledger's revert reason verbatim so clients can key on it.
func apiError(err error) *echo.HTTPError {

	status := http.StatusInternalServerError
	message := "internal server error"

	var ivAuth failure.InvalidAuthorization
	var unknown failure.UnknownSubject
	var expired failure.ExpiredDeadline
	var rejected failure.LedgerRejected
	var timeout failure.LedgerTimeout
	switch {
	case errors.As(err, &ivAuth):
		status = http.StatusBadRequest
		message = ivAuth.Error()
	case errors.As(err, &expired):
		status = http.StatusBadRequest
		message = expired.Error()
	case errors.As(err, &unknown):
		status = http.StatusNotFound
		message = unknownSubjectMessage
	case errors.As(err, &rejected):
		status = http.StatusUnprocessableEntity
		message = rejected.Reason
	case errors.As(err, &timeout):
		status = http.StatusGatewayTimeout
		message = timeout.Error()
	case errors.Is(err, journal.ErrNotFound):
		status = http.StatusNotFound
		message = "submission not found"
	}

	return echo.NewHTTPError(status, ErrorResponse{
		Success: false,
		Error:   message,
	})
}
