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

package failure

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// LedgerRejected is the error for a transaction the ledger program reverted.
// The reason string is surfaced exactly as the ledger program produced it.
// The operator's fee may already be spent when this is returned; that is
// reported, never hidden.
type LedgerRejected struct {
	Description Description
	Reason      string
	Hash        common.Hash
}

// Error implements the error interface.
func (l LedgerRejected) Error() string {
	return fmt.Sprintf("ledger rejected transaction: %s", l.Reason)
}
