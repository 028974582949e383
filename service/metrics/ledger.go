package metrics

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/numaan0/proof-mint-blockchain/models/proofmint"
	"github.com/numaan0/proof-mint-blockchain/relay/relayer"
)

const namespaceRelay = "relay"

// MetricsLedger wraps the ledger client and records metrics for the
// transactions it submits and the reads it serves.
type MetricsLedger struct {
	ledger       relayer.Ledger
	transactions *prometheus.CounterVec
	failures     *prometheus.CounterVec
	duration     prometheus.Histogram
	sequence     prometheus.Gauge
}

// NewMetricsLedger creates a ledger decorator that counts submissions per
// action and outcome and tracks confirmation latency.
func NewMetricsLedger(ledger relayer.Ledger) *MetricsLedger {
	transactionOpts := prometheus.CounterOpts{
		Name:      "transactions_confirmed",
		Namespace: namespaceRelay,
		Help:      "number of relayed transactions confirmed on the ledger",
	}
	transactions := promauto.NewCounterVec(transactionOpts, []string{"action"})

	failureOpts := prometheus.CounterOpts{
		Name:      "transactions_failed",
		Namespace: namespaceRelay,
		Help:      "number of relayed transactions that failed",
	}
	failures := promauto.NewCounterVec(failureOpts, []string{"action"})

	durationOpts := prometheus.HistogramOpts{
		Name:      "confirmation_seconds",
		Namespace: namespaceRelay,
		Help:      "time from broadcast to observed inclusion",
		Buckets:   []float64{1, 2, 5, 10, 30, 60, 90},
	}
	duration := promauto.NewHistogram(durationOpts)

	sequenceOpts := prometheus.GaugeOpts{
		Name:      "operator_sequence",
		Namespace: namespaceRelay,
		Help:      "last operator account sequence value consumed",
	}
	sequence := promauto.NewGauge(sequenceOpts)

	l := MetricsLedger{
		ledger:       ledger,
		transactions: transactions,
		failures:     failures,
		duration:     duration,
		sequence:     sequence,
	}

	return &l
}

func (l *MetricsLedger) BorrowWithSignature(ctx context.Context, subject common.Address, deadline *big.Int, sig []byte) (proofmint.Confirmation, error) {
	return l.observe(proofmint.ActionBorrow, func() (proofmint.Confirmation, error) {
		return l.ledger.BorrowWithSignature(ctx, subject, deadline, sig)
	})
}

func (l *MetricsLedger) SyncProfileWithSignature(ctx context.Context, subject common.Address, earnings *big.Int, score *big.Int, tenure *big.Int, sig []byte) (proofmint.Confirmation, error) {
	return l.observe(proofmint.ActionSyncProfile, func() (proofmint.Confirmation, error) {
		return l.ledger.SyncProfileWithSignature(ctx, subject, earnings, score, tenure, sig)
	})
}

func (l *MetricsLedger) SubjectNonce(ctx context.Context, subject common.Address) (*big.Int, error) {
	return l.ledger.SubjectNonce(ctx, subject)
}

func (l *MetricsLedger) observe(kind proofmint.ActionKind, submit func() (proofmint.Confirmation, error)) (proofmint.Confirmation, error) {

	start := time.Now()
	confirmation, err := submit()
	if err != nil {
		l.failures.With(prometheus.Labels{"action": kind.String()}).Inc()
		return proofmint.Confirmation{}, err
	}

	l.transactions.With(prometheus.Labels{"action": kind.String()}).Inc()
	l.duration.Observe(time.Since(start).Seconds())
	l.sequence.Set(float64(confirmation.Sequence))

	return confirmation, nil
}
