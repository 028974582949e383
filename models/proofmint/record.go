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
)

// ReputationRecord is a subject's off-ledger work history, owned by the
// platform registry. The relay only ever reads these records.
type ReputationRecord struct {
	Earnings uint64 `json:"earnings"`
	Score    uint64 `json:"score"`
	Tenure   uint64 `json:"tenure"`
}

// ScaledEarnings converts the record's earnings from platform units into the
// ledger-native fixed-point scale.
func (r ReputationRecord) ScaledEarnings() *big.Int {
	earnings := new(big.Int).SetUint64(r.Earnings)
	return earnings.Mul(earnings, FixedPointBase)
}
