// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/keys"
	"github.com/ava-labs/countervm/state"
	"github.com/ava-labs/countervm/tstate"
	"github.com/ava-labs/countervm/utils"
)

type Transaction struct {
	Base *Base `json:"base"`

	Action Action `json:"action"`
	Auth   Auth   `json:"auth"`

	digest    []byte
	bytes     []byte
	size      int
	id        ids.ID
	stateKeys state.Keys
}

func NewTx(base *Base, action Action) *Transaction {
	return &Transaction{
		Base:   base,
		Action: action,
	}
}

func (t *Transaction) Digest() ([]byte, error) {
	if len(t.digest) > 0 {
		return t.digest, nil
	}
	size := t.Base.Size() + consts.ByteLen + t.Action.Size()
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	t.Base.Marshal(p)
	p.PackByte(t.Action.GetTypeID())
	t.Action.Marshal(p)
	return p.Bytes(), p.Err()
}

func (t *Transaction) Sign(
	factory AuthFactory,
	actionRegistry ActionRegistry,
	authRegistry AuthRegistry,
) (*Transaction, error) {
	msg, err := t.Digest()
	if err != nil {
		return nil, err
	}
	auth, err := factory.Sign(msg)
	if err != nil {
		return nil, err
	}
	t.Auth = auth

	// Ensure transaction is fully initialized and correct by reloading it from
	// bytes
	size := len(msg) + consts.ByteLen + t.Auth.Size()
	p := codec.NewWriter(size, consts.NetworkSizeLimit)
	if err := t.Marshal(p); err != nil {
		return nil, err
	}
	p = codec.NewReader(p.Bytes(), consts.MaxInt)
	return UnmarshalTx(p, actionRegistry, authRegistry)
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) Size() int { return t.size }

func (t *Transaction) ID() ids.ID { return t.id }

func (t *Transaction) Expiry() int64 { return t.Base.Timestamp }

// Actor is the verified identity the action runs as.
func (t *Transaction) Actor() codec.Address { return t.Auth.Actor() }

func (t *Transaction) StateKeys() (state.Keys, error) {
	if t.stateKeys != nil {
		return t.stateKeys, nil
	}
	stateKeys, err := ActionStateKeys(t.Action, t.Auth.Actor())
	if err != nil {
		return nil, err
	}

	// Cache keys if called again
	t.stateKeys = stateKeys
	return stateKeys, nil
}

// ActionStateKeys returns the keys [action] declares for [actor] after
// checking each of them is well formed.
func ActionStateKeys(action Action, actor codec.Address) (state.Keys, error) {
	stateKeys := make(state.Keys)
	for k, v := range action.StateKeys(actor) {
		if !keys.Valid([]byte(k)) {
			return nil, ErrInvalidKeyValue
		}
		// [Add] will take the union of key permissions
		stateKeys.Add(k, v)
	}
	return stateKeys, nil
}

// Units is the compute charged for the transaction regardless of its outcome.
func (t *Transaction) Units(r Rules) uint64 {
	return r.GetBaseComputeUnits() + t.Action.ComputeUnits() + t.Auth.ComputeUnits()
}

// Verify checks the signature of the transaction over its digest.
func (t *Transaction) Verify(ctx context.Context) error {
	msg, err := t.Digest()
	if err != nil {
		return err
	}
	if err := t.Auth.Verify(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrAuthFailed, err)
	}
	return nil
}

// PreExecute checks that the transaction may run at [timestamp].
func (t *Transaction) PreExecute(r Rules, timestamp int64) error {
	return t.Base.Execute(r, timestamp)
}

// Execute runs the action against [ts]. If the action fails, every write it
// made is rolled back and the error is recorded in the [Result].
//
// Invariant: [PreExecute] is called just before [Execute]
func (t *Transaction) Execute(ctx context.Context, r Rules, ts *tstate.TStateView) *Result {
	return ExecuteAction(ctx, ts, t.Action, t.Auth.Actor(), t.Units(r))
}

// ExecuteAction runs [action] as [actor] against [ts], undoing all of its
// writes if it fails.
func ExecuteAction(
	ctx context.Context,
	ts *tstate.TStateView,
	action Action,
	actor codec.Address,
	units uint64,
) *Result {
	// We create a temp state checkpoint to ensure we don't commit failed actions to state.
	actionStart := ts.OpIndex()
	output, err := action.Execute(ctx, ts, actor)
	if err != nil {
		ts.Rollback(ctx, actionStart)
		return &Result{
			Success: false,
			Error:   utils.ErrBytes(err),
			Units:   units,
		}
	}
	return &Result{
		Success: true,
		Output:  output,
		Units:   units,
	}
}

func (t *Transaction) Marshal(p *codec.Packer) error {
	if len(t.bytes) > 0 {
		p.PackFixedBytes(t.bytes)
		return p.Err()
	}

	t.Base.Marshal(p)
	p.PackByte(t.Action.GetTypeID())
	t.Action.Marshal(p)
	p.PackByte(t.Auth.GetTypeID())
	t.Auth.Marshal(p)
	return p.Err()
}

func UnmarshalTx(
	p *codec.Packer,
	actionRegistry ActionRegistry,
	authRegistry AuthRegistry,
) (*Transaction, error) {
	start := p.Offset()
	base, err := UnmarshalBase(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal base", err)
	}
	action, err := actionRegistry.Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal action", err)
	}
	digest := p.Offset()
	auth, err := authRegistry.Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal auth", err)
	}
	if err := p.Err(); err != nil {
		return nil, p.Err()
	}

	var tx Transaction
	tx.Base = base
	tx.Action = action
	tx.Auth = auth
	codecBytes := p.Bytes()
	tx.digest = codecBytes[start:digest]
	tx.bytes = codecBytes[start:p.Offset()] // ensure errors handled before grabbing memory
	tx.size = len(tx.bytes)
	tx.id = utils.ToID(tx.bytes)
	return &tx, nil
}

// ParseTx decodes a transaction that must span all of [raw].
func ParseTx(raw []byte, actionRegistry ActionRegistry, authRegistry AuthRegistry) (*Transaction, error) {
	p := codec.NewReader(raw, consts.NetworkSizeLimit)
	tx, err := UnmarshalTx(p, actionRegistry, authRegistry)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, ErrTxExtraBytes
	}
	return tx, nil
}
