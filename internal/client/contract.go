//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=client_test
package client

// Sessions источник токена; Logout вызывается при 401 на админском запросе.
type Sessions interface {
	Token() string
	Logout() error
}
