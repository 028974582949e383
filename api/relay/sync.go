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

	"github.com/labstack/echo/v4"
)

// SyncProfile implements the sync-profile endpoint. It looks up the
// subject's reputation record, attests to it with the operator key and
// relays it to the ledger, responding once inclusion is observed.
func (a *API) SyncProfile(ctx echo.Context) error {

	var req SyncRequest
	err := ctx.Bind(&req)
	if err != nil {
		return badRequest(err)
	}
	err = a.validate.Request(req)
	if err != nil {
		return badRequest(err)
	}

	result, err := a.sync.Sync(ctx.Request().Context(), req.Address)
	if err != nil {
		return apiError(err)
	}

	res := SyncResponse{
		Success: true,
		TxHash:  result.Hash.Hex(),
		Data: SyncData{
			Earnings: result.Earnings.String(),
			Score:    result.Score,
			Tenure:   result.Tenure,
		},
	}

	return ctx.JSON(http.StatusOK, res)
}
