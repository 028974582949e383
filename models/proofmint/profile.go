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

// Profile is a subject's on-ledger profile as reported by the ledger program.
// It is created implicitly by the first successful profile sync, at which
// point the verified flag flips to true. The relay never assumes a state flip
// is immediately visible after submitting the transaction that triggers it.
type Profile struct {
	Earnings   *big.Int
	Score      *big.Int
	Tenure     *big.Int
	Verified   bool
	HasLoan    bool
	LoanAmount *big.Int
}

// CreditTerms are the oracle-priced loan conditions for a subject, as
// computed by the ledger program.
type CreditTerms struct {
	Price       *big.Int
	Eligibility *big.Int
	Cap         *big.Int
}
