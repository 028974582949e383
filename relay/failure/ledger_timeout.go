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
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// LedgerTimeout is the error for a broadcast transaction whose inclusion was
// not observed within the bounded wait. The outcome is unknown and must be
// re-queried rather than assumed failed.
type LedgerTimeout struct {
	Description Description
	Hash        common.Hash
	Wait        time.Duration
}

// Error implements the error interface.
func (l LedgerTimeout) Error() string {
	return fmt.Sprintf("ledger inclusion not observed in time: %s", l.Description)
}
