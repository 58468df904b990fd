package ports

import "context"

// SecureStore is durable key-value storage that survives app reinstall
// within a storage group. Get reports domain.ErrSecretNotFound for absent
// keys; Delete of an absent key is not an error.
type SecureStore interface {
	Get(ctx context.Context, group string, key string) ([]byte, error)
	Put(ctx context.Context, group string, key string, value []byte) error
	Delete(ctx context.Context, group string, key string) error
}
