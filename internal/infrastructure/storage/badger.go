package storage

import (
	"context"
	"errors"
	"fmt"

	"pantry-planner/internal/core/inventory"
	"pantry-planner/internal/infrastructure/config"
	"pantry-planner/internal/pkg/common"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// BadgerDB 鍵前綴
const (
	itemKeyPrefix  = "inventory:item:"
	indexKeyPrefix = "inventory:id:"
	sequenceKey    = "inventory:seq"
)

// BadgerStore 以 BadgerDB 持久化庫存。
// 品項鍵使用補零序號，前綴掃描即為插入順序。
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewBadgerStore 開啟 BadgerDB
func NewBadgerStore(cfg config.BadgerConfig) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), 100)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("get sequence: %w", err)
	}

	common.LogInfo("BadgerDB 庫存儲存已開啟",
		zap.String("path", cfg.Path),
		zap.Bool("in_memory", cfg.InMemory),
	)

	return &BadgerStore{db: db, seq: seq}, nil
}

func itemKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", itemKeyPrefix, seq))
}

func indexKey(id string) []byte {
	return []byte(indexKeyPrefix + id)
}

// List 依序號掃描所有品項
func (s *BadgerStore) List(ctx context.Context) ([]inventory.Item, error) {
	items := []inventory.Item{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var item inventory.Item
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return fmt.Errorf("unmarshal item %s: %w", it.Item().Key(), err)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Insert 寫入品項；相同 ID 覆寫原位置
func (s *BadgerStore) Insert(ctx context.Context, item inventory.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var key []byte

		existing, err := txn.Get(indexKey(item.ID))
		switch {
		case err == nil:
			key, err = existing.ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("read index: %w", err)
			}
		case errors.Is(err, badger.ErrKeyNotFound):
			n, err := s.seq.Next()
			if err != nil {
				return fmt.Errorf("next sequence: %w", err)
			}
			key = itemKey(n)
			if err := txn.Set(indexKey(item.ID), key); err != nil {
				return fmt.Errorf("set index: %w", err)
			}
		default:
			return fmt.Errorf("get index: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set item: %w", err)
		}
		return nil
	})
}

// Delete 刪除品項與索引
func (s *BadgerStore) Delete(ctx context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		existing, err := txn.Get(indexKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return inventory.ErrItemNotFound
		}
		if err != nil {
			return fmt.Errorf("get index: %w", err)
		}

		key, err := existing.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read index: %w", err)
		}
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		if err := txn.Delete(indexKey(id)); err != nil {
			return fmt.Errorf("delete index: %w", err)
		}
		return nil
	})
}

// Ping 確認資料庫未關閉
func (s *BadgerStore) Ping(ctx context.Context) error {
	if s.db.IsClosed() {
		return errors.New("badger: database closed")
	}
	return nil
}

// Close 釋放序號並關閉資料庫
func (s *BadgerStore) Close() error {
	if err := s.seq.Release(); err != nil {
		common.LogWarn("釋放序號失敗", zap.Error(err))
	}
	return s.db.Close()
}
