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

	"github.com/ethereum/go-ethereum/common"
)

// Authorization is an off-chain authorization for a privileged ledger action,
// produced by the subject's wallet and relayed by the operator. The nonce is
// the subject's own anti-replay counter as read from the ledger; it is
// unrelated to the operator account sequence used to order the relay's
// transactions.
type Authorization struct {
	Subject   common.Address
	Kind      ActionKind
	Nonce     *big.Int
	Deadline  *big.Int
	Signature []byte
}
