package ports

import (
	"context"
)

// HTTPServer defines the interface for the web presentation host
type HTTPServer interface {
	Start(ctx context.Context, port int, host string) error
	Stop(ctx context.Context) error
	IsRunning() bool
}
