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

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
)

type Journal struct {
	SaveFunc   func(submission proofmint.Submission) error
	ByHashFunc func(hash common.Hash) (proofmint.Submission, error)
}

func BaselineJournal(t *testing.T) *Journal {
	t.Helper()

	j := Journal{
		SaveFunc: func(proofmint.Submission) error {
			return nil
		},
		ByHashFunc: func(common.Hash) (proofmint.Submission, error) {
			return GenericSubmission, nil
		},
	}

	return &j
}

func (j *Journal) Save(submission proofmint.Submission) error {
	return j.SaveFunc(submission)
}

func (j *Journal) ByHash(hash common.Hash) (proofmint.Submission, error) {
	return j.ByHashFunc(hash)
}
