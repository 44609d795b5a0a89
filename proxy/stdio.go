package proxy

import (
	"context"

	"github.com/viant/jsonrpc/transport/server/stdio"
)

// Stdio returns a stdio server attached to this service's handler factory.
func (s *Service) Stdio(ctx context.Context, options ...stdio.Option) *stdio.Server {
	return stdio.New(ctx, s.NewHandler, options...)
}
