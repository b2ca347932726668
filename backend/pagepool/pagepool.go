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

//go:generate mockgen -source pagepool.go -destination pagepool_mocks.go -package pagepool

import "sync"

// Pool is a source of fixed-capacity byte pages. All pages obtained from
// one pool instance have the same capacity, reported by PageSize. Every
// acquired page must eventually be handed back through Release.
//
// Pages returned by Acquire are guaranteed to be all-zero, so that
// consumers may rely on untouched regions reading as zero and no content
// of a previous owner can ever leak.
type Pool interface {
	// PageSize returns the fixed capacity of pages provided by this pool.
	PageSize() int

	// Acquire provides a zeroed page owned by the caller until released.
	Acquire() *Page

	// Release returns a page obtained from this pool for future reuse.
	Release(page *Page)
}

// RecyclingPool is a Pool retaining released pages in a free list to
// serve future acquisitions without extra allocations. Pages are zeroed
// at acquisition time, not at release time.
//
// A pool may be shared by multiple buffers running in different
// goroutines, so access to the free list is synchronized. The individual
// pages remain single-owner and are not synchronized.
type RecyclingPool struct {
	pageSize  int
	freePages []*Page
	allocated int // total number of pages ever created by this pool
	inUse     int // number of pages currently held by consumers
	lock      sync.Mutex
}

// NewRecyclingPool creates an empty pool producing pages of the given size.
func NewRecyclingPool(pageSize int) *RecyclingPool {
	return &RecyclingPool{pageSize: pageSize}
}

func (p *RecyclingPool) PageSize() int {
	return p.pageSize
}

func (p *RecyclingPool) Acquire() *Page {
	p.lock.Lock()
	defer p.lock.Unlock()
	var page *Page
	if len(p.freePages) > 0 {
		page = p.freePages[len(p.freePages)-1]
		p.freePages = p.freePages[:len(p.freePages)-1]
		page.Clear()
	} else {
		page = NewPage(p.pageSize)
		p.allocated++
	}
	p.inUse++
	return page
}

func (p *RecyclingPool) Release(page *Page) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.inUse--
	p.freePages = append(p.freePages, page)
}

// PagesInUse returns the number of pages currently held by consumers.
func (p *RecyclingPool) PagesInUse() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.inUse
}

// PagesAllocated returns the total number of pages created by this pool.
func (p *RecyclingPool) PagesAllocated() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.allocated
}
