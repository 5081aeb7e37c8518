package health

import (
	"context"
	"portfolio-server/pkg/log"

	"google.golang.org/grpc"
)

func logErrors(logger log.ILogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err != nil {
			logger.WithField("method", info.FullMethod).Error(err)
		}
		return resp, err
	}
}
