// Copyright 2024 The gstake Authors
// This file is part of the gstake library.
//
// The gstake library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The gstake library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the gstake library. If not, see <http://www.gnu.org/licenses/>.

// Package state implements the journaled storage layer system actions run
// against. All contract state (token balances, stakes, rewards, the
// stakeholder registry) lives in 32-byte storage words keyed by
// (owner address, slot hash).
package state

import (
	"fmt"

	"github.com/gstake-network/gstake/common"
	"github.com/gstake-network/gstake/stakedb"
	lru "github.com/hashicorp/golang-lru"
)

// storagePrefix namespaces storage words in the backing key-value store.
var storagePrefix = []byte("gs") // gs + owner + slot -> word

// cleanCacheSize is the number of recently read storage words kept in memory.
const cleanCacheSize = 65536

// StateDB holds contract storage with snapshot/revert support. It is the
// single mutation point for a logical transaction: the executor takes a
// snapshot before dispatching a handler and reverts it on error, so a failed
// action never leaves a partial write behind.
//
// StateDB is not safe for concurrent use; invocations are serialized by the
// hosting environment.
type StateDB struct {
	db    stakedb.KeyValueStore
	clean *lru.Cache // storage key -> common.Hash, reads that hit the backing store

	dirty   map[string]common.Hash
	journal []journalEntry
}

// journalEntry records the previous value of a dirty slot so a revert can
// restore it.
type journalEntry struct {
	key  string
	prev common.Hash
	// fresh marks slots that had no dirty entry before this write; a revert
	// removes them from the dirty set instead of restoring a value.
	fresh bool
}

// New creates a StateDB on top of the given key-value store.
func New(db stakedb.KeyValueStore) *StateDB {
	clean, _ := lru.New(cleanCacheSize)
	return &StateDB{
		db:    db,
		clean: clean,
		dirty: make(map[string]common.Hash),
	}
}

func storageKey(owner common.Address, slot common.Hash) string {
	buf := make([]byte, 0, len(storagePrefix)+common.AddressLength+common.HashLength)
	buf = append(buf, storagePrefix...)
	buf = append(buf, owner.Bytes()...)
	buf = append(buf, slot.Bytes()...)
	return string(buf)
}

// GetState retrieves the storage word for the given owner and slot, returning
// the zero hash for slots that were never written.
func (s *StateDB) GetState(owner common.Address, slot common.Hash) common.Hash {
	key := storageKey(owner, slot)
	if val, ok := s.dirty[key]; ok {
		return val
	}
	if val, ok := s.clean.Get(key); ok {
		return val.(common.Hash)
	}
	var word common.Hash
	if enc, err := s.db.Get([]byte(key)); err == nil {
		word = common.BytesToHash(enc)
	}
	s.clean.Add(key, word)
	return word
}

// SetState writes a storage word for the given owner and slot. The previous
// value is journaled so the write can be reverted.
func (s *StateDB) SetState(owner common.Address, slot common.Hash, value common.Hash) {
	key := storageKey(owner, slot)
	if prev, ok := s.dirty[key]; ok {
		if prev == value {
			return
		}
		s.journal = append(s.journal, journalEntry{key: key, prev: prev})
	} else {
		s.journal = append(s.journal, journalEntry{key: key, fresh: true})
	}
	s.dirty[key] = value
}

// Snapshot returns an identifier for the current revision of the state.
func (s *StateDB) Snapshot() int {
	return len(s.journal)
}

// RevertToSnapshot reverts all state changes made since the given revision.
func (s *StateDB) RevertToSnapshot(revid int) {
	if revid < 0 || revid > len(s.journal) {
		panic(fmt.Sprintf("revision id %v cannot be reverted", revid))
	}
	for i := len(s.journal) - 1; i >= revid; i-- {
		entry := s.journal[i]
		if entry.fresh {
			delete(s.dirty, entry.key)
		} else {
			s.dirty[entry.key] = entry.prev
		}
	}
	s.journal = s.journal[:revid]
}

// Commit flushes all dirty storage through a single batch write and resets
// the journal. Zero words are deleted from the backing store rather than
// written, keeping the database free of empty slots.
func (s *StateDB) Commit() error {
	batch := s.db.NewBatch()
	for key, val := range s.dirty {
		if val.IsZero() {
			if err := batch.Delete([]byte(key)); err != nil {
				return err
			}
		} else if err := batch.Put([]byte(key), val.Bytes()); err != nil {
			return err
		}
		s.clean.Add(key, val)
	}
	if err := batch.Write(); err != nil {
		return err
	}
	s.dirty = make(map[string]common.Hash)
	s.journal = s.journal[:0]
	return nil
}
