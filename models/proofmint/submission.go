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
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Confirmation describes a ledger transaction that was broadcast by the relay
// and observed as included. The sequence is the operator account sequence
// value the transaction consumed.
type Confirmation struct {
	Hash     common.Hash
	Sequence uint64
}

// Submission is the journal record kept for every transaction the relay
// broadcast. The ledger remains the system of record; the journal only
// exists for operational introspection.
type Submission struct {
	Hash      common.Hash    `cbor:"1,keyasint"`
	Subject   common.Address `cbor:"2,keyasint"`
	Kind      ActionKind     `cbor:"3,keyasint"`
	Sequence  uint64         `cbor:"4,keyasint"`
	CreatedAt time.Time      `cbor:"5,keyasint"`
}
