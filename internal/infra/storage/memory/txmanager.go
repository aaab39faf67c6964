package memory

import (
	"context"
	"sync"
)

// TxManager заменяет txmanager.TransactionManager для хранилища в памяти
// Сериализуемые блоки выполняются строго по одному, откатов нет
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager создает менеджер транзакций для хранилища в памяти
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Do выполняет fn без изоляции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// DoSerializable выполняет fn под общей блокировкой
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
