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

// Package client provides a Go client for the relay HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/numaan0/proof-mint-blockchain/api/relay"
)

// APIError is a structured failure response from the relay API.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e APIError) Error() string {
	return fmt.Sprintf("relay API error (status: %d): %s", e.StatusCode, e.Message)
}

// Client calls the relay HTTP API.
type Client struct {
	base string
	http *http.Client
}

// New creates a client for the relay API at the given base URL.
func New(base string, options ...Option) *Client {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	c := Client{
		base: base,
		http: cfg.Client,
	}

	return &c
}

// SyncProfile asks the relay to push the subject's reputation record onto
// the ledger. The call returns once inclusion is observed.
func (c *Client) SyncProfile(ctx context.Context, address string) (relay.SyncResponse, error) {

	req := relay.SyncRequest{Address: address}
	var res relay.SyncResponse
	err := c.post(ctx, "/sync-profile", req, &res)
	if err != nil {
		return relay.SyncResponse{}, err
	}

	return res, nil
}

// RelayBorrow submits a signed borrow authorization for gasless relay. The
// call returns once inclusion is observed.
func (c *Client) RelayBorrow(ctx context.Context, req relay.BorrowRequest) (relay.BorrowResponse, error) {

	var res relay.BorrowResponse
	err := c.post(ctx, "/relay-borrow", req, &res)
	if err != nil {
		return relay.BorrowResponse{}, err
	}

	return res, nil
}

// Profile reads the subject's authoritative on-ledger profile.
func (c *Client) Profile(ctx context.Context, address string) (relay.ProfileData, error) {

	var res relay.ProfileResponse
	err := c.get(ctx, "/profile/"+address, &res)
	if err != nil {
		return relay.ProfileData{}, err
	}

	return res.Data, nil
}

// Nonce reads the subject's current anti-replay nonce, as needed to sign a
// borrow authorization.
func (c *Client) Nonce(ctx context.Context, address string) (*big.Int, error) {

	var res relay.NonceResponse
	err := c.get(ctx, "/nonce/"+address, &res)
	if err != nil {
		return nil, err
	}

	nonce, ok := new(big.Int).SetString(res.Nonce, 10)
	if !ok {
		return nil, fmt.Errorf("could not parse nonce (nonce: %s)", res.Nonce)
	}

	return nonce, nil
}

// CreditTerms reads the oracle-priced loan conditions for the subject.
func (c *Client) CreditTerms(ctx context.Context, address string) (relay.TermsData, error) {

	var res relay.TermsResponse
	err := c.get(ctx, "/credit-terms/"+address, &res)
	if err != nil {
		return relay.TermsData{}, err
	}

	return res.Data, nil
}

// Submission reads the journal record of a past relay transaction.
func (c *Client) Submission(ctx context.Context, hash common.Hash) (relay.SubmissionData, error) {

	var res relay.SubmissionResponse
	err := c.get(ctx, "/submissions/"+hash.Hex(), &res)
	if err != nil {
		return relay.SubmissionData{}, err
	}

	return res.Data, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("could not encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("could not execute request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var failure relay.ErrorResponse
		err = json.NewDecoder(res.Body).Decode(&failure)
		if err != nil {
			return APIError{StatusCode: res.StatusCode, Message: "unknown error"}
		}
		return APIError{StatusCode: res.StatusCode, Message: failure.Error}
	}

	err = json.NewDecoder(res.Body).Decode(out)
	if err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}

	return nil
}
