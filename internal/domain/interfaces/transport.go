package interfaces

import (
	"context"

	domaintypes "prismslink/internal/domain/types"
)

// Transport performs one request/response round trip with the server.
type Transport interface {
	Send(ctx context.Context, req domaintypes.WireRequest) ([]byte, error)
}
