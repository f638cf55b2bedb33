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

package format

import (
	"errors"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var ErrInvalidJSON = errors.New("invalid JSON")

var jsonAPI = jsoniter.Config{
	EscapeHTML:    false,
	IndentionStep: 2,
}.Froze()

// JSONMsg formats a labelled record as an indented JSON object keeping field order, preceded by a bracketed
// title line.
func JSONMsg(title string, descriptions, fields []string) string {
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	stream.WriteObjectStart()

	for i := range fields {
		if i > 0 {
			stream.WriteMore()
		}

		if i < len(descriptions) {
			stream.WriteObjectField(descriptions[i])
		} else {
			stream.WriteObjectField("")
		}

		stream.WriteString(fields[i])
	}

	stream.WriteObjectEnd()

	sb := &strings.Builder{}

	sb.WriteString("[")
	sb.WriteString(title)
	sb.WriteString("]\n")
	sb.Write(stream.Buffer())
	sb.WriteString("\n")

	return sb.String()
}

// JSONIndent re-indents a raw JSON document, keeping key order, numbers and non-ASCII text exactly as sent.
func JSONIndent(raw []byte) (string, error) {
	if !jsonAPI.Valid(raw) {
		return "", ErrInvalidJSON
	}

	iter := jsonAPI.BorrowIterator(raw)
	defer jsonAPI.ReturnIterator(iter)

	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	copyValue(iter, stream)

	if iter.Error != nil && !errors.Is(iter.Error, io.EOF) {
		return "", fmt.Errorf("%w: %w", ErrInvalidJSON, iter.Error)
	}

	if stream.Error != nil {
		return "", stream.Error
	}

	return string(stream.Buffer()), nil
}

// copyValue copies a single JSON value from iter to stream.
func copyValue(iter *jsoniter.Iterator, stream *jsoniter.Stream) {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		empty := true

		iter.ReadMapCB(func(it *jsoniter.Iterator, field string) bool {
			if empty {
				stream.WriteObjectStart()

				empty = false
			} else {
				stream.WriteMore()
			}

			stream.WriteObjectField(field)
			copyValue(it, stream)

			return it.Error == nil
		})

		if empty {
			stream.WriteEmptyObject()
		} else {
			stream.WriteObjectEnd()
		}
	case jsoniter.ArrayValue:
		empty := true

		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			if empty {
				stream.WriteArrayStart()

				empty = false
			} else {
				stream.WriteMore()
			}

			copyValue(it, stream)

			return it.Error == nil
		})

		if empty {
			stream.WriteEmptyArray()
		} else {
			stream.WriteArrayEnd()
		}
	case jsoniter.StringValue:
		stream.WriteString(iter.ReadString())
	case jsoniter.NumberValue:
		stream.WriteRaw(string(iter.ReadNumber()))
	case jsoniter.BoolValue:
		stream.WriteBool(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		stream.WriteNil()
	default:
		iter.ReportError("JSONIndent", "unexpected value")
	}
}
