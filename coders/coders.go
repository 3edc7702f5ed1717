// Licensed to the Apache Software Foundation (ASF) under one or more
// contributor license agreements.  See the NOTICE file distributed with
// this work for additional information regarding copyright ownership.
// The ASF licenses this file to You under the Apache License, Version 2.0
// (the "License"); you may not use this file except in compliance with
// the License.  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package coders encodes and decodes the scalar payloads carried between
// ranks. Passing bytes rather than Go values keeps transfers value-semantic:
// the receiving rank can only ever observe a copy.
//
// The wire format per scalar is one kind byte followed by eight bytes,
// big endian. Integers travel as their 64-bit two's complement form, floats
// as IEEE 754 double bits. The kind byte lets a receiver detect that the
// sender wrote a different element type, instead of reinterpreting the bits.
package coders

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Scalar constrains the types this package can code.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Kind identifies the element type of an encoded scalar.
type Kind byte

const (
	kindInvalid Kind = iota
	Int
	Int32
	Int64
	Uint
	Uint32
	Uint64
	Float32
	Float64
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint:
		return "uint"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// Encoder accumulates encoded scalars.
type Encoder struct {
	data []byte
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Data returns the encoded bytes so far.
func (e *Encoder) Data() []byte {
	return e.data
}

func (e *Encoder) put(k Kind, bits uint64) {
	e.data = append(e.data, byte(k))
	e.data = binary.BigEndian.AppendUint64(e.data, bits)
}

// Decoder consumes bytes produced by an Encoder.
type Decoder struct {
	data []byte
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

func (d *Decoder) take(want Kind) (uint64, error) {
	if len(d.data) < 9 {
		return 0, fmt.Errorf("coders: decoding %v: %d bytes remain, want 9", want, len(d.data))
	}
	if got := Kind(d.data[0]); got != want {
		return 0, fmt.Errorf("coders: decoding %v: payload is %v", want, got)
	}
	bits := binary.BigEndian.Uint64(d.data[1:9])
	d.data = d.data[9:]
	return bits, nil
}

// Coder encodes and decodes scalars of a single type.
type Coder[E Scalar] struct {
	kind  Kind
	float bool
}

// MakeCoder returns the Coder for the given scalar type.
func MakeCoder[E Scalar]() Coder[E] {
	var zero E
	switch any(zero).(type) {
	case int:
		return Coder[E]{kind: Int}
	case int32:
		return Coder[E]{kind: Int32}
	case int64:
		return Coder[E]{kind: Int64}
	case uint:
		return Coder[E]{kind: Uint}
	case uint32:
		return Coder[E]{kind: Uint32}
	case uint64:
		return Coder[E]{kind: Uint64}
	case float32:
		return Coder[E]{kind: Float32, float: true}
	case float64:
		return Coder[E]{kind: Float64, float: true}
	default:
		panic(fmt.Sprintf("coders: unsupported element type %T", zero))
	}
}

// Kind reports the element type this Coder handles.
func (c Coder[E]) Kind() Kind {
	return c.kind
}

// Encode appends v to the encoder.
func (c Coder[E]) Encode(enc *Encoder, v E) {
	if c.float {
		// float32 widens losslessly, so doubles cover both widths.
		enc.put(c.kind, math.Float64bits(float64(v)))
		return
	}
	enc.put(c.kind, uint64(int64(v)))
}

// Decode consumes one scalar from the decoder.
func (c Coder[E]) Decode(dec *Decoder) (E, error) {
	bits, err := dec.take(c.kind)
	if err != nil {
		var zero E
		return zero, err
	}
	if c.float {
		return E(math.Float64frombits(bits)), nil
	}
	return E(int64(bits)), nil
}
