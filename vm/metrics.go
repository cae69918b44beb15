// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "countervm"

type Metrics struct {
	txsSubmitted prometheus.Counter
	txsRejected  prometheus.Counter
	txsAccepted  prometheus.Counter
	txsFailed    *prometheus.CounterVec
	queries      prometheus.Counter
	simulations  prometheus.Counter
	height       prometheus.Gauge
	txExecute    metric.Averager
}

func newMetrics(r prometheus.Registerer) (*Metrics, error) {
	txExecute, err := metric.NewAverager(
		"countervm_tx_execute",
		"time spent executing a transaction",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &Metrics{
		txsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txs_submitted",
			Help:      "number of txs submitted to the vm",
		}),
		txsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txs_rejected",
			Help:      "number of txs rejected before execution",
		}),
		txsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txs_accepted",
			Help:      "number of txs executed successfully and committed",
		}),
		txsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "txs_failed",
			Help:      "number of txs whose action failed and was rolled back",
		}, []string{"action"}),
		queries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries",
			Help:      "number of read-only queries served",
		}),
		simulations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations",
			Help:      "number of actions simulated",
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "height",
			Help:      "number of committed txs",
		}),
		txExecute: txExecute,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsSubmitted),
		r.Register(m.txsRejected),
		r.Register(m.txsAccepted),
		r.Register(m.txsFailed),
		r.Register(m.queries),
		r.Register(m.simulations),
		r.Register(m.height),
	)
	return m, errs.Err
}
