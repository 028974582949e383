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
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"

	api "github.com/numaan0/proof-mint-blockchain/api/relay"
	"github.com/numaan0/proof-mint-blockchain/codec/zbor"
	"github.com/numaan0/proof-mint-blockchain/relay/ledger"
	"github.com/numaan0/proof-mint-blockchain/relay/operator"
	"github.com/numaan0/proof-mint-blockchain/relay/registry"
	"github.com/numaan0/proof-mint-blockchain/relay/relayer"
	"github.com/numaan0/proof-mint-blockchain/relay/signer"
	"github.com/numaan0/proof-mint-blockchain/relay/synchronizer"
	"github.com/numaan0/proof-mint-blockchain/relay/validator"
	"github.com/numaan0/proof-mint-blockchain/service/journal"
	"github.com/numaan0/proof-mint-blockchain/service/metrics"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagContract string
		flagJournal  string
		flagKey      string
		flagLevel    string
		flagMetrics  string
		flagPort     uint16
		flagRegistry string
		flagRPC      string
		flagWait     time.Duration
	)

	pflag.StringVarP(&flagContract, "contract", "c", "", "address of the lending program contract")
	pflag.StringVarP(&flagJournal, "journal", "j", "journal", "database directory for the submission journal")
	pflag.StringVarP(&flagKey, "key", "k", "", "hex-encoded private key of the relay operator")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagMetrics, "metrics", "m", "", "address on which to expose metrics (empty disables metrics)")
	pflag.Uint16VarP(&flagPort, "port", "p", 3001, "port to serve the relay API on")
	pflag.StringVarP(&flagRegistry, "registry", "d", "platform_db.json", "JSON file with off-ledger reputation records")
	pflag.StringVarP(&flagRPC, "rpc", "r", "https://coston2-api.flare.network/ext/C/rpc", "JSON-RPC endpoint of the ledger node")
	pflag.DurationVarP(&flagWait, "wait", "w", 90*time.Second, "bounded wait for transaction inclusion")

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

	if flagContract == "" || flagKey == "" {
		log.Error().Msg("contract address and operator key are required")
		return failure
	}

	// Initialize the operator account from the configured key.
	key, err := crypto.HexToECDSA(strings.TrimPrefix(flagKey, "0x"))
	if err != nil {
		log.Error().Err(err).Msg("could not parse operator key")
		return failure
	}
	account := operator.New(log, key)

	// Load the off-ledger reputation records.
	records, err := registry.FromJSON(flagRegistry)
	if err != nil {
		log.Error().Str("registry", flagRegistry).Err(err).Msg("could not load reputation records")
		return failure
	}

	// Connect to the ledger node and bring the operator account online.
	client, err := ethclient.Dial(flagRPC)
	if err != nil {
		log.Error().Str("rpc", flagRPC).Err(err).Msg("could not connect to ledger node")
		return failure
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = account.Open(ctx, client)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("could not open operator account")
		return failure
	}
	defer account.Close()

	// Initialize the submission journal on its badger database.
	opts := badger.DefaultOptions(flagJournal).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Error().Str("journal", flagJournal).Err(err).Msg("could not open journal DB")
		return failure
	}
	defer db.Close()
	store := journal.New(db, zbor.NewCodec())

	// Initialize the ledger client against the lending program contract.
	contract := common.HexToAddress(flagContract)
	lending, err := ledger.New(log, client, account, contract, ledger.WithWaitTimeout(flagWait))
	if err != nil {
		log.Error().Err(err).Msg("could not create ledger client")
		return failure
	}

	// When metrics are enabled, transaction submission goes through the
	// metrics decorator and the metrics server is exposed.
	var submitLedger relayer.Ledger = lending
	metricsEnabled := flagMetrics != ""
	if metricsEnabled {
		submitLedger = metrics.NewMetricsLedger(lending)
		server := metrics.NewServer(log, flagMetrics)
		go func() {
			err := server.Start()
			if err != nil {
				log.Warn().Err(err).Msg("metrics server encountered error")
			}
		}()
	}

	// Relay core initialization.
	relay := relayer.New(log, submitLedger, store)
	attest := signer.FromKey(key)
	sync := synchronizer.New(log, records, attest, relay)
	validate := validator.New()
	ctrl := api.NewAPI(validate, relay, sync, lending, store)

	// Relay API initialization.
	elog := lecho.From(log)
	svr := echo.New()
	svr.HideBanner = true
	svr.HidePort = true
	svr.Logger = elog
	svr.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	svr.POST("/sync-profile", ctrl.SyncProfile)
	svr.POST("/relay-borrow", ctrl.RelayBorrow)
	svr.GET("/profile/:address", ctrl.Profile)
	svr.GET("/nonce/:address", ctrl.Nonce)
	svr.GET("/credit-terms/:address", ctrl.CreditTerms)
	svr.GET("/submissions/:hash", ctrl.Submission)

	// This section launches the main executing components in their own
	// goroutine, so they can run concurrently. Afterwards, we wait for an
	// interrupt signal in order to proceed with the next section.
	go func() {
		log.Info().Msg("ProofMint relay server starting")
		err := svr.Start(fmt.Sprint(":", flagPort))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("relay API encountered error")
		}
		log.Info().Msg("ProofMint relay server stopped")
	}()

	<-sig
	log.Info().Msg("ProofMint relay server stopping")
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	// The following code starts a shut down with a certain timeout and makes
	// sure that the main executing components are shutting down within the
	// allocated shutdown time. Otherwise, we will force the shutdown and log
	// an error. We then wait for shutdown on each component to complete.
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	var merr *multierror.Error
	err = svr.Shutdown(ctx)
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("could not shut down relay API: %w", err))
	}
	err = db.Sync()
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("could not sync journal DB: %w", err))
	}
	err = merr.ErrorOrNil()
	if err != nil {
		log.Error().Err(err).Msg("could not shut down cleanly")
		return failure
	}

	return success
}
