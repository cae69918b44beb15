// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "fmt"

// TypeParser maps wire type IDs to the function that decodes them.
type TypeParser[T Typed] struct {
	indexToDecoder map[uint8]func(*Packer) (T, error)
}

// NewTypeParser returns an instance of a Typeparser
func NewTypeParser[T Typed]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]func(*Packer) (T, error){},
	}
}

// Register a new type into TypeParser [p]. The type ID is read from
// [instance] so IDs are always assigned explicitly by the caller.
func (p *TypeParser[T]) Register(instance Typed, f func(*Packer) (T, error)) error {
	typeID := instance.GetTypeID()
	if _, ok := p.indexToDecoder[typeID]; ok {
		return fmt.Errorf("%w: type id %d (%T)", ErrDuplicateItem, typeID, instance)
	}
	p.indexToDecoder[typeID] = f
	return nil
}

// LookupIndex returns the decoder function associated with [index].
func (p *TypeParser[T]) LookupIndex(index uint8) (func(*Packer) (T, error), bool) {
	f, ok := p.indexToDecoder[index]
	return f, ok
}

// Unmarshal reads a type ID followed by the object it prefixes.
func (p *TypeParser[T]) Unmarshal(packer *Packer) (T, error) {
	var zero T
	typeID := packer.UnpackByte()
	if err := packer.Err(); err != nil {
		return zero, err
	}
	f, ok := p.LookupIndex(typeID)
	if !ok {
		return zero, fmt.Errorf("%w: %d", ErrUnknownType, typeID)
	}
	return f(packer)
}
