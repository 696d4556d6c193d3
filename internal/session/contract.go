//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=session_test
package session

// Storage долговременное хранилище сериализованных значений по ключу.
type Storage interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
