// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package blobstore

import (
	"fmt"

	"github.com/Fantom-foundation/Courier/go/common"
	"github.com/Fantom-foundation/Courier/go/common/immutable"
	"github.com/Fantom-foundation/Courier/go/stream"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Store is a content-addressed LevelDB archive of materialized stream
// payloads. A payload is keyed by the Keccak-256 hash of its content, so
// storing the same bytes twice is idempotent and deduplicated.
//
// The store does not own the database handle; opening and closing the
// database is the caller's responsibility.
type Store struct {
	db common.LevelDB
}

// NewStore creates a store on top of the given database.
func NewStore(db common.LevelDB) *Store {
	return &Store{db: db}
}

// Put persists the content of the given view and returns the content hash
// under which it can be retrieved.
func (s *Store) Put(view stream.View) (common.Hash, error) {
	payload := view.ToBytes().ToBytes()
	hash := common.Keccak256(payload)
	key := PayloadStoreKey.ToDBKey(hash)
	if err := s.db.Put(key.ToBytes(), payload, nil); err != nil {
		return common.Hash{}, fmt.Errorf("failed to store payload %v: %w", hash, err)
	}
	return hash, nil
}

// Get retrieves the payload stored under the given content hash. The
// second result is false when no such payload exists.
func (s *Store) Get(hash common.Hash) (immutable.Bytes, bool, error) {
	key := PayloadStoreKey.ToDBKey(hash)
	data, err := s.db.Get(key.ToBytes(), nil)
	if err == leveldb.ErrNotFound {
		return immutable.Bytes{}, false, nil
	}
	if err != nil {
		return immutable.Bytes{}, false, fmt.Errorf("failed to load payload %v: %w", hash, err)
	}
	return immutable.NewBytes(data), true, nil
}

// Has tests whether a payload is stored under the given content hash.
func (s *Store) Has(hash common.Hash) (bool, error) {
	key := PayloadStoreKey.ToDBKey(hash)
	return s.db.Has(key.ToBytes(), nil)
}

// Hashes lists the content hashes of all payloads currently stored, in
// no particular order.
func (s *Store) Hashes() ([]common.Hash, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte{byte(PayloadStoreKey)}), nil)
	defer iter.Release()
	res := []common.Hash{}
	for iter.Next() {
		var hash common.Hash
		copy(hash[:], iter.Key()[1:])
		res = append(res, hash)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate payloads: %w", err)
	}
	return res, nil
}

// Delete removes the payload stored under the given content hash. It is
// not an error when no such payload exists.
func (s *Store) Delete(hash common.Hash) error {
	key := PayloadStoreKey.ToDBKey(hash)
	return s.db.Delete(key.ToBytes(), nil)
}
