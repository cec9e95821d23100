package inventory

import (
	"context"
	"errors"
)

// ErrItemNotFound 刪除或查詢不存在的品項
var ErrItemNotFound = errors.New("inventory item not found")

// Store 庫存持久化介面
type Store interface {
	// List 依插入順序回傳所有品項
	List(ctx context.Context) ([]Item, error)

	// Insert 新增品項
	Insert(ctx context.Context, item Item) error

	// Delete 刪除品項，不存在時回傳 ErrItemNotFound
	Delete(ctx context.Context, id string) error

	// Ping 檢查儲存是否可用
	Ping(ctx context.Context) error

	// Close 釋放連線
	Close() error
}
