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

import "github.com/Fantom-foundation/Courier/go/common"

// TableSpace divides the key-value storage into spaces by adding a prefix
// to the key.
type TableSpace byte

const (
	// PayloadStoreKey is a tablespace for encoded stream payloads.
	PayloadStoreKey TableSpace = 'P'
)

// DbKey is a database key combining a tablespace prefix with a 32-byte
// content hash.
type DbKey [1 + 32]byte

func (d DbKey) ToBytes() []byte {
	return d[:]
}

// ToDBKey creates a database key for the given content hash within this
// tablespace.
func (t TableSpace) ToDBKey(hash common.Hash) DbKey {
	var dbKey DbKey
	dbKey[0] = byte(t)
	copy(dbKey[1:], hash[:])
	return dbKey
}
