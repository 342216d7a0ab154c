package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/gob"

	"github.com/cockroachdb/pebble"

	"github.com/opnet-network/indexer/errs"
	"github.com/opnet-network/indexer/types"
)

// Key prefixes partition the flat pebble keyspace by record kind.
const (
	prefixHeader      byte = 0x01
	prefixComputed    byte = 0x02
	prefixTransaction byte = 0x03
	prefixHeightIndex byte = 0x04 // height -> block hash, for PreviousHeader/PreviousChecksum
	prefixMempool     byte = 0x05
)

// PebbleStore implements Repository and MempoolRepository over a single
// cockroachdb/pebble database — the ordered KV engine this pack's own
// dependency graph already carries, standing in for the out-of-scope
// Mongo-style repository.
type PebbleStore struct {
	db *pebble.DB
}

func OpenPebbleStore(dir string) (*PebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errs.Wrap(errs.KindStorageError, "cannot open pebble store", err)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Close() error { return s.db.Close() }

func heightKey(prefix byte, height uint64) []byte {
	key := make([]byte, 9)
	key[0] = prefix
	binary.BigEndian.PutUint64(key[1:], height)
	return key
}

func hashKey(prefix byte, h types.Hash) []byte {
	key := make([]byte, 1+len(h))
	key[0] = prefix
	copy(key[1:], h[:])
	return key
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, errs.Wrap(errs.KindStorageError, "encode failed", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v any) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return errs.Wrap(errs.KindStorageError, "decode failed", err)
	}
	return nil
}

func (s *PebbleStore) SaveBlock(ctx context.Context, block *types.Block) error {
	batch := s.db.NewBatch()
	defer batch.Close()

	hdrBytes, err := encode(block.Header)
	if err != nil {
		return err
	}
	if err := batch.Set(heightKey(prefixHeader, block.Header.Height), hdrBytes, nil); err != nil {
		return errs.Wrap(errs.KindStorageError, "write header failed", err)
	}

	if block.Computed != nil {
		compBytes, err := encode(*block.Computed)
		if err != nil {
			return err
		}
		if err := batch.Set(heightKey(prefixComputed, block.Header.Height), compBytes, nil); err != nil {
			return errs.Wrap(errs.KindStorageError, "write computed failed", err)
		}
	}

	if err := batch.Set(hashKey(prefixHeightIndex, block.Header.Hash), heightKey(0, block.Header.Height)[1:], nil); err != nil {
		return errs.Wrap(errs.KindStorageError, "write height index failed", err)
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return errs.Wrap(errs.KindStorageError, "commit block batch failed", err)
	}
	return nil
}

func (s *PebbleStore) SaveTransaction(ctx context.Context, tx *types.Transaction) error {
	// ClassificationError is an internal debugging aid, not a persisted
	// field: gob cannot encode an unregistered error concrete type, and
	// nothing downstream of persistence needs it.
	persisted := *tx
	persisted.ClassificationError = nil
	data, err := encode(persisted)
	if err != nil {
		return err
	}
	if err := s.db.Set(hashKey(prefixTransaction, tx.Txid), data, pebble.Sync); err != nil {
		return errs.Wrap(errs.KindStorageError, "write transaction failed", err)
	}
	return nil
}

func (s *PebbleStore) PreviousChecksum(ctx context.Context, height uint64) (types.Hash, bool, error) {
	_, computed, ok, err := s.PreviousHeader(ctx, height)
	if err != nil || !ok {
		return types.Hash{}, ok, err
	}
	return computed.ChecksumRoot, true, nil
}

func (s *PebbleStore) PreviousHeader(ctx context.Context, height uint64) (*types.Header, *types.Computed, bool, error) {
	if height == 0 {
		return nil, nil, false, nil
	}
	prev := height - 1
	hdrData, closer, err := s.db.Get(heightKey(prefixHeader, prev))
	if err == pebble.ErrNotFound {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, errs.Wrap(errs.KindStorageError, "read header failed", err)
	}
	var hdr types.Header
	decErr := decode(hdrData, &hdr)
	closer.Close()
	if decErr != nil {
		return nil, nil, false, decErr
	}

	compData, closer2, err := s.db.Get(heightKey(prefixComputed, prev))
	if err == pebble.ErrNotFound {
		return &hdr, nil, true, nil
	}
	if err != nil {
		return nil, nil, false, errs.Wrap(errs.KindStorageError, "read computed failed", err)
	}
	var comp types.Computed
	decErr = decode(compData, &comp)
	closer2.Close()
	if decErr != nil {
		return nil, nil, false, decErr
	}
	return &hdr, &comp, true, nil
}

func (s *PebbleStore) HasTransaction(ctx context.Context, txid types.Hash) (bool, error) {
	_, closer, err := s.db.Get(hashKey(prefixTransaction, txid))
	if err == pebble.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, errs.Wrap(errs.KindStorageError, "read transaction failed", err)
	}
	closer.Close()
	return true, nil
}

// RevertToHeight drops the header/computed records for every height above
// the given one. Transaction records are left keyed by txid and simply
// orphaned — a reorg replay re-derives block membership from a fresh
// deserialize/execute pass. Each prefix is deleted in its own bounded
// range so the sweep never crosses into the transaction keyspace.
func (s *PebbleStore) RevertToHeight(ctx context.Context, height uint64) error {
	if err := s.db.DeleteRange(heightKey(prefixHeader, height+1), []byte{prefixHeader + 1}, pebble.Sync); err != nil {
		return errs.Wrap(errs.KindStorageError, "revert to height failed (headers)", err)
	}
	if err := s.db.DeleteRange(heightKey(prefixComputed, height+1), []byte{prefixComputed + 1}, pebble.Sync); err != nil {
		return errs.Wrap(errs.KindStorageError, "revert to height failed (computed)", err)
	}
	return nil
}

func (s *PebbleStore) PutEntry(ctx context.Context, entry MempoolEntry) error {
	data, err := encode(entry)
	if err != nil {
		return err
	}
	if err := s.db.Set(hashKey(prefixMempool, entry.ID), data, pebble.Sync); err != nil {
		return errs.Wrap(errs.KindStorageError, "write mempool entry failed", err)
	}
	return nil
}

func (s *PebbleStore) GetEntry(ctx context.Context, txid types.Hash) (*MempoolEntry, bool, error) {
	data, closer, err := s.db.Get(hashKey(prefixMempool, txid))
	if err == pebble.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(errs.KindStorageError, "read mempool entry failed", err)
	}
	var entry MempoolEntry
	decErr := decode(data, &entry)
	closer.Close()
	if decErr != nil {
		return nil, false, decErr
	}
	return &entry, true, nil
}

func (s *PebbleStore) DeleteEntry(ctx context.Context, txid types.Hash) error {
	if err := s.db.Delete(hashKey(prefixMempool, txid), pebble.Sync); err != nil {
		return errs.Wrap(errs.KindStorageError, "delete mempool entry failed", err)
	}
	return nil
}

func (s *PebbleStore) PurgeOlderThan(ctx context.Context, height uint64) (int, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{prefixMempool},
		UpperBound: []byte{prefixMempool + 1},
	})
	if err != nil {
		return 0, errs.Wrap(errs.KindStorageError, "iterate mempool failed", err)
	}
	defer iter.Close()

	var purged int
	batch := s.db.NewBatch()
	defer batch.Close()
	for iter.First(); iter.Valid(); iter.Next() {
		var entry MempoolEntry
		if err := decode(iter.Value(), &entry); err != nil {
			continue
		}
		if entry.BlockHeightSeen <= height {
			key := append([]byte(nil), iter.Key()...)
			if err := batch.Delete(key, nil); err != nil {
				return purged, errs.Wrap(errs.KindStorageError, "batch delete failed", err)
			}
			purged++
		}
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return purged, errs.Wrap(errs.KindStorageError, "commit purge batch failed", err)
	}
	return purged, nil
}
