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

package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numaan0/proof-mint-blockchain/api/client"
	"github.com/numaan0/proof-mint-blockchain/api/relay"
	"github.com/numaan0/proof-mint-blockchain/testing/mocks"
)

func TestClient_SyncProfile(t *testing.T) {
	t.Parallel()

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/sync-profile", r.URL.Path)

			var req relay.SyncRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, mocks.GenericSubject.Hex(), req.Address)

			res := relay.SyncResponse{
				Success: true,
				TxHash:  mocks.GenericHash.Hex(),
				Data: relay.SyncData{
					Earnings: mocks.GenericProfile.Earnings.String(),
					Score:    87,
					Tenure:   24,
				},
			}
			require.NoError(t, json.NewEncoder(w).Encode(res))
		}))
		defer srv.Close()

		c := client.New(srv.URL)

		res, err := c.SyncProfile(context.Background(), mocks.GenericSubject.Hex())
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, mocks.GenericHash.Hex(), res.TxHash)
		assert.Equal(t, uint64(87), res.Data.Score)
	})

	t.Run("error envelope maps to API error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			res := relay.ErrorResponse{Success: false, Error: "User not found"}
			require.NoError(t, json.NewEncoder(w).Encode(res))
		}))
		defer srv.Close()

		c := client.New(srv.URL)

		_, err := c.SyncProfile(context.Background(), mocks.GenericSubject.Hex())
		require.Error(t, err)

		var apiErr client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "User not found", apiErr.Message)
	})

	t.Run("malformed error body keeps status code", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := client.New(srv.URL)

		_, err := c.SyncProfile(context.Background(), mocks.GenericSubject.Hex())
		require.Error(t, err)

		var apiErr client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	})
}

func TestClient_Reads(t *testing.T) {
	t.Parallel()

	t.Run("profile", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/profile/"+mocks.GenericSubject.Hex(), r.URL.Path)

			res := relay.ProfileResponse{
				Success: true,
				Data: relay.ProfileData{
					Earnings:   mocks.GenericProfile.Earnings.String(),
					Score:      87,
					Tenure:     24,
					Verified:   true,
					LoanAmount: "0",
				},
			}
			require.NoError(t, json.NewEncoder(w).Encode(res))
		}))
		defer srv.Close()

		c := client.New(srv.URL)

		profile, err := c.Profile(context.Background(), mocks.GenericSubject.Hex())
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericProfile.Earnings.String(), profile.Earnings)
		assert.True(t, profile.Verified)
	})

	t.Run("nonce", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/nonce/"+mocks.GenericSubject.Hex(), r.URL.Path)

			res := relay.NonceResponse{Success: true, Nonce: "3"}
			require.NoError(t, json.NewEncoder(w).Encode(res))
		}))
		defer srv.Close()

		c := client.New(srv.URL)

		nonce, err := c.Nonce(context.Background(), mocks.GenericSubject.Hex())
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericNonce, nonce)
	})

	t.Run("nonce with malformed payload", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			res := relay.NonceResponse{Success: true, Nonce: "three"}
			require.NoError(t, json.NewEncoder(w).Encode(res))
		}))
		defer srv.Close()

		c := client.New(srv.URL)

		_, err := c.Nonce(context.Background(), mocks.GenericSubject.Hex())
		assert.Error(t, err)
	})

	t.Run("submission", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/submissions/"+mocks.GenericHash.Hex(), r.URL.Path)

			res := relay.SubmissionResponse{
				Success: true,
				Data: relay.SubmissionData{
					Hash:     mocks.GenericHash.Hex(),
					Subject:  mocks.GenericSubject.Hex(),
					Action:   "BORROW",
					Sequence: mocks.GenericSequence,
				},
			}
			require.NoError(t, json.NewEncoder(w).Encode(res))
		}))
		defer srv.Close()

		c := client.New(srv.URL)

		submission, err := c.Submission(context.Background(), mocks.GenericHash)
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericHash.Hex(), submission.Hash)
		assert.Equal(t, "BORROW", submission.Action)
	})
}

func TestClient_RelayBorrow(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/relay-borrow", r.URL.Path)

		var req relay.BorrowRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, mocks.GenericSubject.Hex(), req.Address)
		assert.Equal(t, uint64(1_700_003_600), req.Deadline)

		res := relay.BorrowResponse{Success: true, TxHash: mocks.GenericHash.Hex()}
		require.NoError(t, json.NewEncoder(w).Encode(res))
	}))
	defer srv.Close()

	c := client.New(srv.URL)

	req := relay.BorrowRequest{
		Address:   mocks.GenericSubject.Hex(),
		Signature: "0x" + "1b",
		Deadline:  1_700_003_600,
		Nonce:     "3",
	}
	res, err := c.RelayBorrow(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, mocks.GenericHash.Hex(), res.TxHash)
}
