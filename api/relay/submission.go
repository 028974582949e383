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

// Submission implements the submissions read endpoint, serving the journal
// record of a past relay transaction by hash.
func (a *API) Submission(ctx echo.Context) error {

	param := ctx.Param("hash")
	hash := common.HexToHash(param)
	if hash == (common.Hash{}) {
		return badRequest(ErrInvalidValidation)
	}

	submission, err := a.journal.ByHash(hash)
	if err != nil {
		return apiError(err)
	}

	res := SubmissionResponse{
		Success: true,
		Data: SubmissionData{
			Hash:      submission.Hash.Hex(),
			Subject:   submission.Subject.Hex(),
			Action:    submission.Kind.String(),
			Sequence:  submission.Sequence,
			CreatedAt: submission.CreatedAt,
		},
	}

	return ctx.JSON(http.StatusOK, res)
}
