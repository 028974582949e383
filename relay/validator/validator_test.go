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

package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/numaan0/proof-mint-blockchain/api/relay"
	"github.com/numaan0/proof-mint-blockchain/relay/validator"
)

const validAddress = "0x8464135c8F25Da09e49BC8782676a84730C318bC"

// A well-formed recoverable signature: 65 bytes, hex-encoded.
var validSignature = "0x" + strings.Repeat("ab", 65)

func TestValidator_Request(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc    string
		request interface{}
		wantErr error
	}{
		{
			desc:    "nominal sync request",
			request: relay.SyncRequest{Address: validAddress},
			wantErr: nil,
		},
		{
			desc:    "sync request with malformed address",
			request: relay.SyncRequest{Address: "not an address"},
			wantErr: relay.ErrAddressFormat,
		},
		{
			desc:    "sync request with unprefixed address",
			request: relay.SyncRequest{Address: strings.TrimPrefix(validAddress, "0x")},
			wantErr: relay.ErrAddressFormat,
		},
		{
			desc: "nominal borrow request",
			request: relay.BorrowRequest{
				Address:   validAddress,
				Signature: validSignature,
				Deadline:  1_700_003_600,
				Nonce:     "3",
			},
			wantErr: nil,
		},
		{
			desc: "borrow request without nonce",
			request: relay.BorrowRequest{
				Address:   validAddress,
				Signature: validSignature,
				Deadline:  1_700_003_600,
			},
			wantErr: nil,
		},
		{
			desc: "borrow request with short signature",
			request: relay.BorrowRequest{
				Address:   validAddress,
				Signature: "0x1122",
				Deadline:  1_700_003_600,
			},
			wantErr: relay.ErrSignatureFormat,
		},
		{
			desc: "borrow request without deadline",
			request: relay.BorrowRequest{
				Address:   validAddress,
				Signature: validSignature,
			},
			wantErr: relay.ErrDeadlineMissing,
		},
		{
			desc: "borrow request with malformed nonce",
			request: relay.BorrowRequest{
				Address:   validAddress,
				Signature: validSignature,
				Deadline:  1_700_003_600,
				Nonce:     "three",
			},
			wantErr: relay.ErrNonceFormat,
		},
		{
			desc:    "non-struct request",
			request: "not a struct",
			wantErr: relay.ErrInvalidValidation,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			v := validator.New()

			err := v.Request(test.request)

			if test.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, test.wantErr)
		})
	}
}

func TestValidator_Address(t *testing.T) {
	t.Parallel()

	v := validator.New()

	assert.NoError(t, v.Address(validAddress))
	assert.ErrorIs(t, v.Address("not an address"), relay.ErrAddressFormat)
	assert.ErrorIs(t, v.Address(""), relay.ErrAddressFormat)
	assert.ErrorIs(t, v.Address(validAddress+"00"), relay.ErrAddressFormat)
}
