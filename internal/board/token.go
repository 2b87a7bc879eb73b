/*
 * Copyright (c) 2026 by the Study Bench authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import "fmt"

// Token is one symbol of the structure descriptor, a preorder (Polish)
// notation for the split topology: 'V' opens a column split, 'H' a row
// split, 'L' marks a leaf. Ratios and pane contents are carried separately.
type Token byte

const (
	TokenColumn Token = 'V'
	TokenRow    Token = 'H'
	TokenLeaf   Token = 'L'
)

func (t Token) String() string { return string(rune(t)) }

// orientation maps a split token to its Orientation. Calling it on TokenLeaf
// is a programming error.
func (t Token) orientation() Orientation {
	switch t {
	case TokenColumn:
		return Column
	case TokenRow:
		return Row
	}
	panic(fmt.Sprintf("board: token %q has no orientation", byte(t)))
}

// ParseDescriptor converts a descriptor string into tokens, rejecting any
// symbol outside the {V,H,L} alphabet. It does not check the shape of the
// sequence; Grow does that while consuming it.
func ParseDescriptor(s string) ([]Token, error) {
	toks := make([]Token, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case byte(TokenColumn), byte(TokenRow), byte(TokenLeaf):
			toks = append(toks, Token(c))
		default:
			return nil, fmt.Errorf("structure descriptor: invalid token %q at offset %d", c, i)
		}
	}
	return toks, nil
}

// DescriptorString renders tokens back into the compact string form.
func DescriptorString(toks []Token) string {
	b := make([]byte, len(toks))
	for i, t := range toks {
		b[i] = byte(t)
	}
	return string(b)
}
