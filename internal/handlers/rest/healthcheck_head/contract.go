package healthcheck_head

import "context"

// Dependency внешний ресурс, без которого сервис не готов принимать трафик.
type Dependency interface {
	Ping(ctx context.Context) error
}
