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

// Package relay implements the HTTP API of the relay service. Handlers bind
// and validate the request, delegate to the relay core and map failures to
// structured error responses; nothing is ever thrown across the network
// boundary.
package relay

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
	"github.com/numaan0/proof-mint-blockchain/relay/synchronizer"
)

// Relayer relays borrow authorizations to the ledger.
type Relayer interface {
	RelayBorrow(ctx context.Context, auth proofmint.Authorization) (common.Hash, error)
}

// Synchronizer pushes reputation records onto the ledger.
type Synchronizer interface {
	Sync(ctx context.Context, address string) (synchronizer.Result, error)
}

// Reader reads authoritative state from the ledger program.
type Reader interface {
	Profile(ctx context.Context, subject common.Address) (proofmint.Profile, error)
	SubjectNonce(ctx context.Context, subject common.Address) (*big.Int, error)
	CreditTerms(ctx context.Context, subject common.Address) (proofmint.CreditTerms, error)
}

// Journal looks up records of past relay submissions.
type Journal interface {
	ByHash(hash common.Hash) (proofmint.Submission, error)
}

// Validator validates API requests and path parameters.
type Validator interface {
	Request(request interface{}) error
	Address(address string) error
}

// API implements the relay HTTP API.
type API struct {
	validate Validator
	relay    Relayer
	sync     Synchronizer
	read     Reader
	journal  Journal
}

// NewAPI creates the relay HTTP API on top of the given components.
func NewAPI(validate Validator, relay Relayer, sync Synchronizer, read Reader, journal Journal) *API {

	a := API{
		validate: validate,
		relay:    relay,
		sync:     sync,
		read:     read,
		journal:  journal,
	}

	return &a
}
