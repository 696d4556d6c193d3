//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=guard_test
package guard

import "courier-tracking/internal/entities"

type Sessions interface {
	Loaded() bool
	Current() (entities.AdminSession, bool)
}
