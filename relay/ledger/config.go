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

package ledger

import (
	"time"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
)

// DefaultConfig is the default configuration for the ledger client.
var DefaultConfig = Config{
	WaitTimeout: proofmint.DefaultWaitTimeout,
	GasLimit:    proofmint.DefaultGasLimit,
}

// Config is the configuration for the ledger client.
type Config struct {
	WaitTimeout time.Duration
	GasLimit    uint64
}

// Option is an option for the ledger client configuration.
type Option func(*Config)

// WithWaitTimeout bounds how long a submission waits for inclusion before
// reporting an unknown outcome.
func WithWaitTimeout(wait time.Duration) Option {
	return func(cfg *Config) {
		cfg.WaitTimeout = wait
	}
}

// WithGasLimit sets the execution budget for relayed transactions.
func WithGasLimit(limit uint64) Option {
	return func(cfg *Config) {
		cfg.GasLimit = limit
	}
}
