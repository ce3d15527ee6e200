package repository

import (
	"time"
)

// CacheRepository определяет методы для работы с кешем.
// Единственный потребитель — хранилище отозванных JWT, поэтому интерфейс
// ограничен записью с TTL и проверкой существования ключа.
type CacheRepository interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Exists(key string) (bool, error)
}
