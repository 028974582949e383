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

// Package registry gives read-only access to the platform's reputation
// records. The registry is an external system of record; the relay only ever
// looks records up, keyed by subject address.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
	"github.com/numaan0/proof-mint-blockchain/relay/failure"
)

// Registry holds the reputation records of all known subjects.
type Registry struct {
	records map[string]proofmint.ReputationRecord
}

// New creates a registry from the given records, keyed by subject address.
func New(records map[string]proofmint.ReputationRecord) *Registry {

	r := Registry{
		records: records,
	}

	return &r
}

// FromJSON loads a registry from a JSON file mapping subject addresses to
// reputation records.
func FromJSON(path string) (*Registry, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read registry file: %w", err)
	}

	var records map[string]proofmint.ReputationRecord
	err = json.Unmarshal(data, &records)
	if err != nil {
		return nil, fmt.Errorf("could not decode registry file: %w", err)
	}

	return New(records), nil
}

// Lookup returns the reputation record for the given subject address. The
// address is first matched exactly as supplied, then lowercased, since
// registry keys may carry mixed-case checksummed addresses.
func (r *Registry) Lookup(address string) (proofmint.ReputationRecord, error) {

	record, ok := r.records[address]
	if ok {
		return record, nil
	}

	record, ok = r.records[strings.ToLower(address)]
	if ok {
		return record, nil
	}

	return proofmint.ReputationRecord{}, failure.UnknownSubject{
		Description: failure.NewDescription("no reputation record for subject",
			failure.WithString("address", address)),
		Address: address,
	}
}
