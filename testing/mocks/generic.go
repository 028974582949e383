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

package mocks

import (
	"errors"
	"io"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
)

// Global variables that can be used for testing. They are non-nil valid
// values for the types commonly needed to test relay components.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericSubject = common.HexToAddress("0x8464135c8F25Da09e49BC8782676a84730C318bC")

	GenericOperator = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	GenericHash = common.HexToHash("0x98ea6e4f216f2fb4b69fff9b3a44842c38686ca685f3f55dc48c5d3fb1107be4")

	GenericSequence = uint64(42)

	GenericNonce = big.NewInt(3)

	GenericDeadline = big.NewInt(1_700_003_600)

	GenericSignature = bytesOf(65, 0x1b)

	GenericRecord = proofmint.ReputationRecord{
		Earnings: 25_000,
		Score:    87,
		Tenure:   24,
	}

	GenericProfile = proofmint.Profile{
		Earnings:   new(big.Int).Mul(big.NewInt(25_000), proofmint.FixedPointBase),
		Score:      big.NewInt(87),
		Tenure:     big.NewInt(24),
		Verified:   true,
		HasLoan:    false,
		// Zero is built from bytes so its internal representation matches
		// the one produced by ABI unpacking, which deep-equality asserts
		// compare against.
		LoanAmount: new(big.Int).SetBytes(make([]byte, 32)),
	}

	GenericTerms = proofmint.CreditTerms{
		Price:       big.NewInt(1_450_000),
		Eligibility: big.NewInt(1),
		Cap:         new(big.Int).Mul(big.NewInt(5_000), proofmint.FixedPointBase),
	}

	GenericConfirmation = proofmint.Confirmation{
		Hash:     GenericHash,
		Sequence: GenericSequence,
	}

	GenericSubmission = proofmint.Submission{
		Hash:      GenericHash,
		Subject:   GenericSubject,
		Kind:      proofmint.ActionBorrow,
		Sequence:  GenericSequence,
		CreatedAt: time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC),
	}
)

func bytesOf(length int, fill byte) []byte {
	data := make([]byte, length)
	for i := range data {
		data[i] = fill
	}
	return data
}
