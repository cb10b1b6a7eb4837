// Package kvstore — долговременное key-value хранилище на SQLite для
// состояния клиента, переживающего перезапуск приложения.
package kvstore

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrKeyNotFound возвращается Get для отсутствующего ключа
var ErrKeyNotFound = errors.New("key not found")

// KV — key-value хранилище поверх одной таблицы SQLite
type KV struct {
	db *sql.DB
}

// Open открывает (или создает) файл хранилища
func Open(path string) (*KV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open kv store: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init kv store: %w", err)
	}

	return &KV{db: db}, nil
}

// Get возвращает значение по ключу или ErrKeyNotFound
func (s *KV) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set записывает значение, затирая предыдущее
func (s *KV) Set(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Delete удаляет ключ. Отсутствие ключа — не ошибка.
func (s *KV) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Close закрывает хранилище
func (s *KV) Close() error {
	return s.db.Close()
}
