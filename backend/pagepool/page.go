// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package pagepool

// Page is a fixed-capacity block of bytes handed out by a Pool.
// A page is owned exclusively by the component that acquired it
// until it is released back to its pool.
type Page struct {
	data []byte
}

// NewPage creates a new page with the given capacity.
func NewPage(capacity int) *Page {
	return &Page{data: make([]byte, capacity)}
}

// Data provides direct access to the content of this page.
func (p *Page) Data() []byte {
	return p.data
}

// Capacity returns the fixed number of bytes this page can hold.
func (p *Page) Capacity() int {
	return len(p.data)
}

// Clear resets the full content of this page to zero.
func (p *Page) Clear() {
	for i := range p.data {
		p.data[i] = 0
	}
}
