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
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"
)

// Profile implements the profile read endpoint. It always reflects the
// ledger's authoritative state; clients poll it to reconcile optimistic
// updates after a relayed transaction.
func (a *API) Profile(ctx echo.Context) error {

	address := ctx.Param("address")
	err := a.validate.Address(address)
	if err != nil {
		return badRequest(err)
	}

	profile, err := a.read.Profile(ctx.Request().Context(), common.HexToAddress(address))
	if err != nil {
		return apiError(err)
	}

	res := ProfileResponse{
		Success: true,
		Data: ProfileData{
			Earnings:   profile.Earnings.String(),
			Score:      profile.Score.Uint64(),
			Tenure:     profile.Tenure.Uint64(),
			Verified:   profile.Verified,
			HasLoan:    profile.HasLoan,
			LoanAmount: profile.LoanAmount.String(),
		},
	}

	return ctx.JSON(http.StatusOK, res)
}

// Nonce implements the nonce read endpoint. Clients read the subject's
// current anti-replay nonce here before signing a borrow authorization.
func (a *API) Nonce(ctx echo.Context) error {

	address := ctx.Param("address")
	err := a.validate.Address(address)
	if err != nil {
		return badRequest(err)
	}

	nonce, err := a.read.SubjectNonce(ctx.Request().Context(), common.HexToAddress(address))
	if err != nil {
		return apiError(err)
	}

	res := NonceResponse{
		Success: true,
		Nonce:   nonce.String(),
	}

	return ctx.JSON(http.StatusOK, res)
}

// CreditTerms implements the credit terms read endpoint.
func (a *API) CreditTerms(ctx echo.Context) error {

	address := ctx.Param("address")
	err := a.validate.Address(address)
	if err != nil {
		return badRequest(err)
	}

	terms, err := a.read.CreditTerms(ctx.Request().Context(), common.HexToAddress(address))
	if err != nil {
		return apiError(err)
	}

	res := TermsResponse{
		Success: true,
		Data: TermsData{
			Price:       terms.Price.String(),
			Eligibility: terms.Eligibility.String(),
			Cap:         terms.Cap.String(),
		},
	}

	return ctx.JSON(http.StatusOK, res)
}
