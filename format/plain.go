// @license
// Copyright (C) 2022  Dinko Korunic
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
	"strings"
)

// PlainMsg formats a labelled record as cleartext block in a string.
func PlainMsg(title string, descriptions, fields []string) string {
	sb := &strings.Builder{}

	plainAddHeader(sb, title)
	plainFormatFields(sb, descriptions, fields)

	return sb.String()
}

// plainFormatFields formats field descriptions and values.
//
//nolint:interfacer
func plainFormatFields(sb *strings.Builder, descriptions, fields []string) {
	for i := range fields {
		if i < len(descriptions) {
			sb.WriteString(descriptions[i])
			sb.WriteString(": ")
		}

		sb.WriteString(fields[i])
		sb.WriteString("\n")
	}
}

// plainAddHeader adds cleartext header containing the record title, and a delimiter.
func plainAddHeader(sb *strings.Builder, title string) {
	sb.WriteString(title)
	sb.WriteString("\n\n")
}
