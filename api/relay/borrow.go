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
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
)

// RelayBorrow implements the relay-borrow endpoint. The subject's signed
// borrow authorization is revalidated and submitted to the ledger with the
// operator paying the fee; the response carries the transaction hash once
// inclusion is observed.
func (a *API) RelayBorrow(ctx echo.Context) error {

	var req BorrowRequest
	err := ctx.Bind(&req)
	if err != nil {
		return badRequest(err)
	}
	err = a.validate.Request(req)
	if err != nil {
		return badRequest(err)
	}

	sig, err := hexutil.Decode(req.Signature)
	if err != nil {
		return badRequest(ErrSignatureFormat)
	}

	var nonce *big.Int
	if req.Nonce != "" {
		nonce, _ = new(big.Int).SetString(req.Nonce, 10)
		if nonce == nil || nonce.Sign() < 0 {
			return badRequest(ErrNonceFormat)
		}
	}

	auth := proofmint.Authorization{
		Subject:   common.HexToAddress(req.Address),
		Kind:      proofmint.ActionBorrow,
		Nonce:     nonce,
		Deadline:  new(big.Int).SetUint64(req.Deadline),
		Signature: sig,
	}

	hash, err := a.relay.RelayBorrow(ctx.Request().Context(), auth)
	if err != nil {
		return apiError(err)
	}

	res := BorrowResponse{
		Success: true,
		TxHash:  hash.Hex(),
	}

	return ctx.JSON(http.StatusOK, res)
}
