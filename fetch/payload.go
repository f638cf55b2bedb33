// @license
// Copyright (C) 2025  Dinko Korunic
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package fetch

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Payload is a lazily parsed JSON object as returned by the API. Every response carries a numeric "code" field
// and a "data" payload.
type Payload struct {
	root jsoniter.Any
}

// NewPayload parses body as a JSON object. Nested values are only decoded when accessed.
func NewPayload(body []byte) (Payload, error) {
	if !payloadAPI.Valid(body) {
		return Payload{}, fmt.Errorf("%w: %v", ErrDecode, "malformed JSON body")
	}

	root := payloadAPI.Get(body)
	if root.ValueType() != jsoniter.ObjectValue {
		return Payload{}, fmt.Errorf("%w: %v", ErrDecode, "JSON body is not an object")
	}

	return Payload{root: root}, nil
}

// Lookup walks nested values following path and returns the value found, reporting whether every step of the
// path was present.
func (p Payload) Lookup(path ...string) (jsoniter.Any, bool) {
	if p.root == nil {
		return nil, false
	}

	keys := make([]any, len(path))
	for i, k := range path {
		keys[i] = k
	}

	v := p.root.Get(keys...)
	if v.LastError() != nil || v.ValueType() == jsoniter.InvalidValue {
		return nil, false
	}

	return v, true
}

// Code returns the status code carried in the response body. Only integral JSON numbers are status codes.
func (p Payload) Code() (int64, bool) {
	v, ok := p.Lookup("code")
	if !ok || v.ValueType() != jsoniter.NumberValue {
		return 0, false
	}

	f := v.ToFloat64()
	n := int64(f)

	return n, float64(n) == f
}

// String returns a scalar value at path as a string, preserving numbers exactly as they were sent.
func (p Payload) String(path ...string) (string, bool) {
	v, ok := p.Lookup(path...)
	if !ok {
		return "", false
	}

	switch v.ValueType() {
	case jsoniter.StringValue, jsoniter.NumberValue, jsoniter.BoolValue:
		return v.ToString(), true
	default:
		// objects, arrays and null have no scalar representation
		return "", false
	}
}

// Object returns a nested object at path.
func (p Payload) Object(path ...string) (Payload, bool) {
	v, ok := p.Lookup(path...)
	if !ok || v.ValueType() != jsoniter.ObjectValue {
		return Payload{}, false
	}

	return Payload{root: v}, true
}

// List returns elements of a nested array at path.
func (p Payload) List(path ...string) ([]Payload, bool) {
	v, ok := p.Lookup(path...)
	if !ok || v.ValueType() != jsoniter.ArrayValue {
		return nil, false
	}

	l := make([]Payload, 0, v.Size())
	for i := range v.Size() {
		l = append(l, Payload{root: v.Get(i)})
	}

	return l, true
}

// Raw returns the JSON text of the payload as it was received.
func (p Payload) Raw() []byte {
	if p.root == nil {
		return nil
	}

	return []byte(p.root.ToString())
}
