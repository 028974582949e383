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

package client

import (
	"net/http"
	"time"
)

// DefaultConfig is the default configuration of the relay API client.
var DefaultConfig = Config{
	Client: &http.Client{Timeout: 2 * time.Minute},
}

// Config is the configuration of the relay API client.
type Config struct {
	Client *http.Client
}

// Option is an option to configure the relay API client.
type Option func(*Config)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *Config) {
		cfg.Client = client
	}
}
