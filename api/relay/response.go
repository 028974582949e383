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

package relay

import (
	"time"
)

// ErrorResponse is the uniform failure envelope of the API.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SyncResponse is the response of the sync-profile endpoint. Earnings are
// reported in ledger-native fixed-point scale, as written.
type SyncResponse struct {
	Success bool     `json:"success"`
	TxHash  string   `json:"txHash"`
	Data    SyncData `json:"data"`
}

// SyncData echoes the record as written to the ledger.
type SyncData struct {
	Earnings string `json:"earnings"`
	Score    uint64 `json:"score"`
	Tenure   uint64 `json:"tenure"`
}

// BorrowResponse is the response of the relay-borrow endpoint.
type BorrowResponse struct {
	Success bool   `json:"success"`
	TxHash  string `json:"txHash"`
}

// ProfileResponse is the response of the profile read endpoint.
type ProfileResponse struct {
	Success bool        `json:"success"`
	Data    ProfileData `json:"data"`
}

// ProfileData is a subject's on-ledger profile. Numeric fields are decimal
// strings since they can exceed 64 bits at the ledger's fixed-point scale.
type ProfileData struct {
	Earnings   string `json:"earnings"`
	Score      uint64 `json:"score"`
	Tenure     uint64 `json:"tenure"`
	Verified   bool   `json:"verified"`
	HasLoan    bool   `json:"hasLoan"`
	LoanAmount string `json:"loanAmount"`
}

// NonceResponse is the response of the nonce read endpoint.
type NonceResponse struct {
	Success bool   `json:"success"`
	Nonce   string `json:"nonce"`
}

// TermsResponse is the response of the credit terms read endpoint.
type TermsResponse struct {
	Success bool      `json:"success"`
	Data    TermsData `json:"data"`
}

// TermsData are the oracle-priced loan conditions for a subject.
type TermsData struct {
	Price       string `json:"price"`
	Eligibility string `json:"eligibility"`
	Cap         string `json:"cap"`
}

// SubmissionResponse is the response of the submissions read endpoint.
type SubmissionResponse struct {
	Success bool           `json:"success"`
	Data    SubmissionData `json:"data"`
}

// SubmissionData is the journal record of a past relay submission.
type SubmissionData struct {
	Hash      string    `json:"txHash"`
	Subject   string    `json:"subjectAddress"`
	Action    string    `json:"action"`
	Sequence  uint64    `json:"sequence"`
	CreatedAt time.Time `json:"createdAt"`
}
