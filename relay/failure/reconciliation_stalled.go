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

// ReconciliationStalled is the warning for a reconciliation loop that never
// observed the expected post-condition within its polling budget. It is not
// fatal; the caller degrades to showing the last authoritative state.
type ReconciliationStalled struct {
	Description Description
	Subject     common.Address
	Attempts    uint
	Interval    time.Duration
}

// Error implements the error interface.
func (r ReconciliationStalled) Error() string {
	return fmt.Sprintf("reconciliation stalled: %s", r.Description)
}
