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

package proofmint

import (
	"math/big"
	"time"
)

// FixedPointBase is the ledger's fixed-point scale. One platform unit of
// earnings corresponds to this many ledger-native units.
var FixedPointBase = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

const (
	// DefaultGasLimit bounds the execution cost of a single relayed
	// transaction, paid from the operator's own funds.
	DefaultGasLimit uint64 = 500_000

	// DefaultWaitTimeout bounds how long the relay waits for a broadcast
	// transaction to be observed as included before giving up with an
	// unknown outcome.
	DefaultWaitTimeout = 90 * time.Second

	// DefaultDeadlineWindow is how long a freshly signed borrow
	// authorization remains valid.
	DefaultDeadlineWindow = time.Hour

	// DefaultPollInterval and DefaultPollAttempts bound the client-side
	// reconciliation loop. The loop always terminates within
	// attempts times interval.
	DefaultPollInterval = time.Second
	DefaultPollAttempts = uint(12)
)
