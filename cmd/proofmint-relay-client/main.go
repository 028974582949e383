// Copyright 2021 Alvalor S.A.
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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/numaan0/proof-mint-blockchain/api/client"
	api "github.com/numaan0/proof-mint-blockchain/api/relay"
	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
	"github.com/numaan0/proof-mint-blockchain/reconciler"
	"github.com/numaan0/proof-mint-blockchain/relay/encoder"
	"github.com/numaan0/proof-mint-blockchain/relay/signer"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Command line parameter initialization.
	var (
		flagAction   string
		flagAddress  string
		flagAPI      string
		flagAttempts uint
		flagInterval time.Duration
		flagKey      string
		flagLevel    string
		flagWindow   time.Duration
	)

	pflag.StringVarP(&flagAction, "action", "a", "profile", "action to perform (profile, terms, sync or borrow)")
	pflag.StringVarP(&flagAddress, "address", "s", "", "subject address (derived from the key for borrows)")
	pflag.StringVarP(&flagAPI, "api", "u", "http://127.0.0.1:3001", "base URL of the relay API")
	pflag.UintVar(&flagAttempts, "attempts", uint(proofmint.DefaultPollAttempts), "reconciliation attempt budget")
	pflag.DurationVar(&flagInterval, "interval", proofmint.DefaultPollInterval, "wait between reconciliation reads")
	pflag.StringVarP(&flagKey, "key", "k", "", "hex-encoded private key of the subject, required for borrows")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.DurationVarP(&flagWindow, "window", "w", proofmint.DefaultDeadlineWindow, "validity window for the borrow deadline")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	relay := client.New(flagAPI)
	ctx := context.Background()

	switch flagAction {
	case "profile":
		profile, err := relay.Profile(ctx, flagAddress)
		if err != nil {
			log.Error().Err(err).Msg("could not read profile")
			return failure
		}
		return print(log, profile)

	case "terms":
		terms, err := relay.CreditTerms(ctx, flagAddress)
		if err != nil {
			log.Error().Err(err).Msg("could not read credit terms")
			return failure
		}
		return print(log, terms)

	case "sync":
		return reconcile(ctx, log, relay, flagAddress, proofmint.ActionSyncProfile,
			func() (resultHash string, err error) {
				res, err := relay.SyncProfile(ctx, flagAddress)
				if err != nil {
					return "", err
				}
				return res.TxHash, nil
			},
			func(profile proofmint.Profile) bool {
				return profile.Verified
			},
			flagInterval, flagAttempts,
		)

	case "borrow":
		if flagKey == "" {
			log.Error().Msg("subject key is required for borrows")
			return failure
		}
		sign, err := signer.FromHex(strings.TrimPrefix(flagKey, "0x"))
		if err != nil {
			log.Error().Err(err).Msg("could not parse subject key")
			return failure
		}
		subject := sign.Address()

		// The authorization binds the subject's current anti-replay nonce
		// and a deadline inside the validity window.
		nonce, err := relay.Nonce(ctx, subject.Hex())
		if err != nil {
			log.Error().Err(err).Msg("could not read subject nonce")
			return failure
		}
		deadline := new(big.Int).SetInt64(time.Now().Add(flagWindow).Unix())
		digest, err := encoder.BorrowDigest(subject, nonce, deadline)
		if err != nil {
			log.Error().Err(err).Msg("could not encode authorization")
			return failure
		}
		sig, err := sign.Sign(digest)
		if err != nil {
			log.Error().Err(err).Msg("could not sign authorization")
			return failure
		}

		req := api.BorrowRequest{
			Address:   subject.Hex(),
			Signature: hexutil.Encode(sig),
			Deadline:  deadline.Uint64(),
			Nonce:     nonce.String(),
		}
		return reconcile(ctx, log, relay, subject.Hex(), proofmint.ActionBorrow,
			func() (string, error) {
				res, err := relay.RelayBorrow(ctx, req)
				if err != nil {
					return "", err
				}
				return res.TxHash, nil
			},
			func(profile proofmint.Profile) bool {
				return profile.HasLoan
			},
			flagInterval, flagAttempts,
		)

	default:
		log.Error().Str("action", flagAction).Msg("invalid action")
		return failure
	}
}

// reconcile runs one reconciliation session to completion: submit once, then
// poll the authoritative profile until the expected effect is visible or the
// attempt budget runs out.
func reconcile(
	ctx context.Context,
	log zerolog.Logger,
	relay *client.Client,
	address string,
	action proofmint.ActionKind,
	submit func() (string, error),
	converged reconciler.CheckFunc,
	interval time.Duration,
	attempts uint,
) int {

	rec := reconciler.New(log,
		reconciler.WithPollInterval(interval),
		reconciler.WithPollAttempts(attempts),
		reconciler.WithStatusNotify(func(status reconciler.Status) {
			log.Info().Str("status", status.String()).Msg("session status changed")
		}),
	)

	session := rec.Start(common.HexToAddress(address), action,
		func() (common.Hash, error) {
			txHash, err := submit()
			if err != nil {
				return common.Hash{}, err
			}
			return common.HexToHash(txHash), nil
		},
		func() (proofmint.Profile, error) {
			data, err := relay.Profile(ctx, address)
			if err != nil {
				return proofmint.Profile{}, err
			}
			return toProfile(data)
		},
		converged,
	)

	err := session.Wait(ctx)
	if err != nil {
		log.Error().Err(err).Str("status", session.Status().String()).Msg("session did not converge")

		// Discard the optimistic guess and show the authoritative state.
		data, rerr := relay.Profile(ctx, address)
		if rerr == nil {
			_ = print(log, data)
		}
		return failure
	}

	log.Info().
		Str("hash", session.Hash().Hex()).
		Str("status", session.Status().String()).
		Msg("session converged")

	return success
}

func toProfile(data api.ProfileData) (proofmint.Profile, error) {

	earnings, ok := new(big.Int).SetString(data.Earnings, 10)
	if !ok {
		return proofmint.Profile{}, fmt.Errorf("could not parse earnings (earnings: %s)", data.Earnings)
	}
	loan, ok := new(big.Int).SetString(data.LoanAmount, 10)
	if !ok {
		return proofmint.Profile{}, fmt.Errorf("could not parse loan amount (amount: %s)", data.LoanAmount)
	}

	profile := proofmint.Profile{
		Earnings:   earnings,
		Score:      new(big.Int).SetUint64(data.Score),
		Tenure:     new(big.Int).SetUint64(data.Tenure),
		Verified:   data.Verified,
		HasLoan:    data.HasLoan,
		LoanAmount: loan,
	}

	return profile, nil
}

func print(log zerolog.Logger, value interface{}) int {
	output, err := json.MarshalIndent(value, "", "\t")
	if err != nil {
		log.Error().Err(err).Msg("could not encode output")
		return failure
	}
	fmt.Println(string(output))
	return success
}
