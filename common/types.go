// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"fmt"
	"strings"
)

// Hash is a 32-byte cryptographic digest of arbitrary content.
type Hash [32]byte

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// StringComparator is a Comparator of strings in their natural order.
type StringComparator struct{}

func (c StringComparator) Compare(a, b *string) int {
	return strings.Compare(*a, *b)
}

// ReverseComparator inverts the order defined by a nested Comparator.
type ReverseComparator[T any] struct {
	Nested Comparator[T]
}

func (c ReverseComparator[T]) Compare(a, b *T) int {
	return -c.Nested.Compare(a, b)
}
