package ports

import (
	"context"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

// AccessEventRepository persists audit records.
type AccessEventRepository interface {
	Insert(ctx context.Context, event *domain.AccessEvent) error
}

// AccessRecorder accepts audit records without blocking the caller.
type AccessRecorder interface {
	Record(event domain.AccessEvent)
}
