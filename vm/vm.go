// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/actions"
	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/counter"
	"github.com/ava-labs/countervm/emap"
	"github.com/ava-labs/countervm/msg"
	"github.com/ava-labs/countervm/registry"
	"github.com/ava-labs/countervm/storage"
	"github.com/ava-labs/countervm/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// ResultListener is notified of every executed transaction while the VM lock
// is held, so it must not block or call back into the VM.
type ResultListener = func(*chain.Transaction, *chain.Result)

// Database is the committed key-value store backing the VM.
type Database interface {
	database.KeyValueReaderWriterDeleter
	database.Batcher
	Close() error
}

// VM executes counter transactions one at a time against a [Database].
//
// Every transaction runs inside a [tstate.TStateView] scoped to the keys its
// action declares. Writes reach the database only when the action succeeds,
// and they are flushed in a single batch.
type VM struct {
	log     logging.Logger
	tracer  oteltrace.Tracer
	metrics *Metrics
	rules   *Rules
	db      Database
	clock   mockable.Clock

	// lock serializes execution and guards [seen] and [lastAccepted]
	lock         sync.Mutex
	seen         *emap.EMap[*chain.Transaction]
	lastAccepted ids.ID
	listeners    []ResultListener

	height *atomic.Uint64
	closed *atomic.Bool
}

func New(
	log logging.Logger,
	tracer oteltrace.Tracer,
	reg prometheus.Registerer,
	db Database,
	rules *Rules,
) (*VM, error) {
	metrics, err := newMetrics(reg)
	if err != nil {
		return nil, err
	}
	return &VM{
		log:     log,
		tracer:  tracer,
		metrics: metrics,
		rules:   rules,
		db:      db,
		seen:    emap.NewEMap[*chain.Transaction](),
		height:  atomic.NewUint64(0),
		closed:  atomic.NewBool(false),
	}, nil
}

func (vm *VM) Logger() logging.Logger { return vm.log }

func (vm *VM) Tracer() oteltrace.Tracer { return vm.tracer }

func (vm *VM) Rules() *Rules { return vm.rules }

func (vm *VM) ChainID() ids.ID { return vm.rules.ChainID() }

// ValidityWindow is the furthest in the future (in ms) a transaction may
// expire.
func (vm *VM) ValidityWindow() int64 { return vm.rules.GetValidityWindow() }

// Clock is exposed so tests can control the time used for expiry checks.
func (vm *VM) Clock() *mockable.Clock { return &vm.clock }

// AddResultListener registers [l] to receive every executed transaction.
func (vm *VM) AddResultListener(l ResultListener) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	vm.listeners = append(vm.listeners, l)
}

func (vm *VM) notify(tx *chain.Transaction, result *chain.Result) {
	for _, l := range vm.listeners {
		l(tx, result)
	}
}

// LastAccepted returns the ID of the last committed transaction and the number
// of transactions committed so far.
func (vm *VM) LastAccepted() (ids.ID, uint64) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	return vm.lastAccepted, vm.height.Load()
}

// SubmitBytes parses [raw] and submits the resulting transaction.
func (vm *VM) SubmitBytes(ctx context.Context, raw []byte) (*chain.Transaction, *chain.Result, error) {
	tx, err := chain.ParseTx(raw, registry.Action, registry.Auth)
	if err != nil {
		vm.metrics.txsRejected.Inc()
		return nil, nil, err
	}
	result, err := vm.Submit(ctx, tx)
	return tx, result, err
}

// Submit executes [tx]. An error is returned if [tx] was rejected before it
// ran. Once executed, the outcome of the action is reported in the [chain.Result]
// and state is only modified if the result is successful.
func (vm *VM) Submit(ctx context.Context, tx *chain.Transaction) (*chain.Result, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.Submit")
	defer span.End()

	vm.metrics.txsSubmitted.Inc()
	if vm.closed.Load() {
		vm.metrics.txsRejected.Inc()
		return nil, ErrClosed
	}

	// Signature verification does not depend on state, so it happens before
	// taking the lock.
	if err := tx.Verify(ctx); err != nil {
		vm.metrics.txsRejected.Inc()
		vm.log.Debug("rejected transaction",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return nil, err
	}

	vm.lock.Lock()
	defer vm.lock.Unlock()

	now := vm.clock.Time().UnixMilli()
	vm.seen.SetMin(now)
	if err := tx.PreExecute(vm.rules, now); err != nil {
		vm.metrics.txsRejected.Inc()
		return nil, err
	}
	if vm.seen.Has(tx) {
		vm.metrics.txsRejected.Inc()
		return nil, chain.ErrDuplicateTx
	}

	start := time.Now()
	ts, view, err := vm.newView(ctx, tx.Action, tx.Actor())
	if err != nil {
		vm.metrics.txsRejected.Inc()
		return nil, err
	}
	result := tx.Execute(ctx, vm.rules, view)
	vm.metrics.txExecute.Observe(float64(time.Since(start)))

	// A failed tx still consumed its ID.
	vm.seen.Add(tx)

	if !result.Success {
		vm.metrics.txsFailed.WithLabelValues(actionName(tx.Action)).Inc()
		vm.log.Debug("transaction failed",
			zap.Stringer("txID", tx.ID()),
			zap.String("error", string(result.Error)),
		)
		vm.notify(tx, result)
		return result, nil
	}

	view.Commit()
	batch := vm.db.NewBatch()
	if err := ts.WriteChanges(ctx, batch); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}
	vm.lastAccepted = tx.ID()
	height := vm.height.Inc()
	vm.metrics.height.Set(float64(height))
	vm.metrics.txsAccepted.Inc()
	vm.log.Debug("accepted transaction",
		zap.Stringer("txID", tx.ID()),
		zap.Uint64("height", height),
	)
	vm.notify(tx, result)
	return result, nil
}

// Simulate runs [action] as [actor] against committed state without signing,
// replay checks, or committing any of its writes.
func (vm *VM) Simulate(ctx context.Context, actor codec.Address, action chain.Action) (*chain.Result, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.Simulate")
	defer span.End()

	if vm.closed.Load() {
		return nil, ErrClosed
	}
	vm.metrics.simulations.Inc()

	vm.lock.Lock()
	defer vm.lock.Unlock()

	_, view, err := vm.newView(ctx, action, actor)
	if err != nil {
		return nil, err
	}
	return chain.ExecuteAction(ctx, view, action, actor, vm.rules.GetBaseComputeUnits()+action.ComputeUnits()), nil
}

// newView reads every key declared by [action] from the database and returns
// a view limited to those keys. The caller must hold [vm.lock].
func (vm *VM) newView(_ context.Context, action chain.Action, actor codec.Address) (*tstate.TState, *tstate.TStateView, error) {
	if vm.closed.Load() {
		return nil, nil, ErrClosed
	}
	stateKeys, err := chain.ActionStateKeys(action, actor)
	if err != nil {
		return nil, nil, err
	}
	values := make(map[string][]byte, len(stateKeys))
	for k := range stateKeys {
		v, err := vm.db.Get([]byte(k))
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		values[k] = v
	}
	ts := tstate.New(len(stateKeys))
	return ts, ts.NewView(stateKeys, values), nil
}

// ReadState reads [keys] from committed state.
func (vm *VM) ReadState(_ context.Context, keys [][]byte) ([][]byte, []error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	values := make([][]byte, len(keys))
	errs := make([]error, len(keys))
	if vm.closed.Load() {
		for i := range errs {
			errs[i] = ErrClosed
		}
		return values, errs
	}
	for i, k := range keys {
		values[i], errs[i] = vm.db.Get(k)
	}
	return values, errs
}

// Query answers [req] from committed state.
func (vm *VM) Query(ctx context.Context, req counter.QueryRequest) (counter.QueryResponse, error) {
	ctx, span := vm.tracer.Start(ctx, "VM.Query")
	defer span.End()

	if vm.closed.Load() {
		return nil, ErrClosed
	}
	vm.metrics.queries.Inc()
	return counter.Query(ctx, storage.NewStateReader(vm.ReadState), req)
}

// QueryJSON answers a JSON encoded query with a JSON encoded response.
func (vm *VM) QueryJSON(ctx context.Context, raw []byte) ([]byte, error) {
	req, err := msg.ParseQuery(raw)
	if err != nil {
		return nil, err
	}
	resp, err := vm.Query(ctx, req)
	if err != nil {
		return nil, err
	}
	return msg.EncodeResponse(resp)
}

func (vm *VM) GetCount(ctx context.Context) (int32, error) {
	resp, err := vm.Query(ctx, counter.GetCount{})
	if err != nil {
		return 0, err
	}
	return resp.(counter.GetCountResponse).Count, nil
}

func (vm *VM) GetOwner(ctx context.Context) (string, error) {
	resp, err := vm.Query(ctx, counter.GetOwner{})
	if err != nil {
		return "", err
	}
	return resp.(counter.GetOwnerResponse).Owner, nil
}

// GetState returns the committed counter record.
func (vm *VM) GetState(ctx context.Context) (*counter.State, error) {
	return storage.GetStateFromState(ctx, vm.ReadState)
}

// Shutdown stops accepting work and closes the database.
func (vm *VM) Shutdown(context.Context) error {
	if !vm.closed.CompareAndSwap(false, true) {
		return nil
	}
	vm.lock.Lock()
	defer vm.lock.Unlock()

	vm.log.Info("shutting down vm", zap.Uint64("height", vm.height.Load()))
	return vm.db.Close()
}

func actionName(a chain.Action) string {
	switch a.GetTypeID() {
	case actions.InstantiateID:
		return "instantiate"
	case actions.IncrementID:
		return "increment"
	case actions.ResetID:
		return "reset"
	default:
		return "unknown"
	}
}
