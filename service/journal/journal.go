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

// Package journal persists a record of every transaction the relay has
// broadcast. The ledger remains the system of record; the journal exists for
// operator forensics, so writes are best-effort from the relay's point of
// view.
package journal

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
)

// ErrNotFound is returned when no submission exists for the given key.
var ErrNotFound = errors.New("submission not found")

// Keyspace prefixes. The subject index maps subject-prefixed keys to the
// submission hash, so lookups by subject stay a pure prefix scan.
const (
	prefixSubmission = byte(1)
	prefixSubject    = byte(2)
)

// Codec encodes submissions for storage.
type Codec interface {
	Marshal(value interface{}) ([]byte, error)
	Unmarshal(data []byte, value interface{}) error
}

// Journal is a badger-backed store of relay submissions.
type Journal struct {
	db    *badger.DB
	codec Codec
}

// New creates a journal on top of the given badger database.
func New(db *badger.DB, codec Codec) *Journal {

	j := Journal{
		db:    db,
		codec: codec,
	}

	return &j
}

// Save persists a submission record, indexed by transaction hash and by
// subject address.
func (j *Journal) Save(submission proofmint.Submission) error {

	payload, err := j.codec.Marshal(submission)
	if err != nil {
		return fmt.Errorf("could not encode submission: %w", err)
	}

	err = j.db.Update(func(tx *badger.Txn) error {
		err := tx.Set(submissionKey(submission.Hash), payload)
		if err != nil {
			return fmt.Errorf("could not save submission: %w", err)
		}
		err = tx.Set(subjectKey(submission.Subject, submission.Hash), submission.Hash[:])
		if err != nil {
			return fmt.Errorf("could not index submission: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not persist submission: %w", err)
	}

	return nil
}

// ByHash returns the submission with the given transaction hash.
func (j *Journal) ByHash(hash common.Hash) (proofmint.Submission, error) {

	var submission proofmint.Submission
	err := j.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(submissionKey(hash))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("could not retrieve submission: %w", err)
		}
		return item.Value(func(val []byte) error {
			return j.codec.Unmarshal(val, &submission)
		})
	})
	if err != nil {
		return proofmint.Submission{}, err
	}

	return submission, nil
}

// BySubject returns all submissions relayed on behalf of the given subject.
// Decoding failures on individual records are collected rather than aborting
// the scan, so one corrupt entry can not hide the rest.
func (j *Journal) BySubject(subject common.Address) ([]proofmint.Submission, error) {

	var submissions []proofmint.Submission
	var merr *multierror.Error
	err := j.db.View(func(tx *badger.Txn) error {

		prefix := append([]byte{prefixSubject}, subject[:]...)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {

			var hash common.Hash
			err := it.Item().Value(func(val []byte) error {
				hash = common.BytesToHash(val)
				return nil
			})
			if err != nil {
				merr = multierror.Append(merr, fmt.Errorf("could not read index entry: %w", err))
				continue
			}

			item, err := tx.Get(submissionKey(hash))
			if err != nil {
				merr = multierror.Append(merr, fmt.Errorf("could not retrieve submission (hash: %x): %w", hash, err))
				continue
			}
			var submission proofmint.Submission
			err = item.Value(func(val []byte) error {
				return j.codec.Unmarshal(val, &submission)
			})
			if err != nil {
				merr = multierror.Append(merr, fmt.Errorf("could not decode submission (hash: %x): %w", hash, err))
				continue
			}

			submissions = append(submissions, submission)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not scan submissions: %w", err)
	}

	return submissions, merr.ErrorOrNil()
}

func submissionKey(hash common.Hash) []byte {
	return append([]byte{prefixSubmission}, hash[:]...)
}

func subjectKey(subject common.Address, hash common.Hash) []byte {
	key := append([]byte{prefixSubject}, subject[:]...)
	return append(key, hash[:]...)
}
