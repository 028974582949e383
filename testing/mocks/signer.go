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
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

type Signer struct {
	AddressFunc func() common.Address
	SignFunc    func(digest common.Hash) ([]byte, error)
}

func BaselineSigner(t *testing.T) *Signer {
	t.Helper()

	s := Signer{
		AddressFunc: func() common.Address {
			return GenericOperator
		},
		SignFunc: func(common.Hash) ([]byte, error) {
			return GenericSignature, nil
		},
	}

	return &s
}

func (s *Signer) Address() common.Address {
	return s.AddressFunc()
}

func (s *Signer) Sign(digest common.Hash) ([]byte, error) {
	return s.SignFunc(digest)
}
