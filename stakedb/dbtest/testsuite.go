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

// Package dbtest provides a conformance suite run against every stakedb backend.
package dbtest

import (
	"testing"

	"github.com/gstake-network/gstake/stakedb"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSuite runs a suite of tests against a KeyValueStore database
// implementation.
func TestDatabaseSuite(t *testing.T, New func() stakedb.KeyValueStore) {
	t.Run("Get", func(t *testing.T) {
		db := New()
		defer db.Close()

		_, err := db.Get([]byte("missing"))
		require.Error(t, err, "reading a missing key must fail")

		require.NoError(t, db.Put([]byte("key"), []byte("value")))
		got, err := db.Get([]byte("key"))
		require.NoError(t, err)
		require.Equal(t, []byte("value"), got)
	})

	t.Run("Has", func(t *testing.T) {
		db := New()
		defer db.Close()

		has, err := db.Has([]byte("key"))
		require.NoError(t, err)
		require.False(t, has)

		require.NoError(t, db.Put([]byte("key"), []byte("value")))
		has, err = db.Has([]byte("key"))
		require.NoError(t, err)
		require.True(t, has)
	})

	t.Run("Delete", func(t *testing.T) {
		db := New()
		defer db.Close()

		require.NoError(t, db.Put([]byte("key"), []byte("value")))
		require.NoError(t, db.Delete([]byte("key")))

		has, err := db.Has([]byte("key"))
		require.NoError(t, err)
		require.False(t, has, "deleted key must be gone")
	})

	t.Run("Overwrite", func(t *testing.T) {
		db := New()
		defer db.Close()

		require.NoError(t, db.Put([]byte("key"), []byte("old")))
		require.NoError(t, db.Put([]byte("key"), []byte("new")))
		got, err := db.Get([]byte("key"))
		require.NoError(t, err)
		require.Equal(t, []byte("new"), got)
	})

	t.Run("Batch", func(t *testing.T) {
		db := New()
		defer db.Close()

		b := db.NewBatch()
		require.NoError(t, b.Put([]byte("1"), []byte("a")))
		require.NoError(t, b.Put([]byte("2"), []byte("b")))
		require.NoError(t, b.Delete([]byte("1")))
		require.NotZero(t, b.ValueSize())

		// Nothing visible before Write.
		has, err := db.Has([]byte("2"))
		require.NoError(t, err)
		require.False(t, has)

		require.NoError(t, b.Write())

		has, err = db.Has([]byte("1"))
		require.NoError(t, err)
		require.False(t, has)
		got, err := db.Get([]byte("2"))
		require.NoError(t, err)
		require.Equal(t, []byte("b"), got)

		b.Reset()
		require.Zero(t, b.ValueSize())
	})

	t.Run("Iterator", func(t *testing.T) {
		db := New()
		defer db.Close()

		entries := map[string]string{
			"ka-1": "a", "ka-2": "b", "ka-3": "c",
			"kb-1": "x", "kb-2": "y",
		}
		for k, v := range entries {
			require.NoError(t, db.Put([]byte(k), []byte(v)))
		}

		// Full prefix scan yields keys in ascending order.
		it := db.NewIterator([]byte("ka-"), nil)
		var keys []string
		for it.Next() {
			keys = append(keys, string(it.Key()))
		}
		it.Release()
		require.Equal(t, []string{"ka-1", "ka-2", "ka-3"}, keys)

		// Scan with a start position skips earlier keys.
		it = db.NewIterator([]byte("ka-"), []byte("2"))
		keys = keys[:0]
		for it.Next() {
			keys = append(keys, string(it.Key()))
		}
		it.Release()
		require.Equal(t, []string{"ka-2", "ka-3"}, keys)
	})
}
