package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nodeforge/futura/logger"
	"github.com/nodeforge/futura/requestid"
)

// LoggingServerInterceptor logs the start and end of every unary call at the
// given logger, tagging each log line with the request ID set in ctx by
// requestid.Context (or by grpc's own request ID interceptor, when chained
// ahead of this one).
func LoggingServerInterceptor(baseLog logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		reqCtx := requestid.Context(ctx)

		l := baseLog.WithCtx(reqCtx)
		l.Infow("server call start", "method", info.FullMethod)
		resp, err := handler(reqCtx, req)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				l.Warnw("server call end", "method", info.FullMethod, "status", "NotFound")
			} else {
				l.Errorw("server call error", "method", info.FullMethod)
			}
		} else {
			l.Infow("server call end", "method", info.FullMethod)
		}

		return resp, err
	}
}

type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context {
	return w.ctx
}

// LoggingServerStreamingInterceptor is the streaming counterpart to
// LoggingServerInterceptor.
func LoggingServerStreamingInterceptor(baseLog logger.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		reqCtx := requestid.Context(ss.Context())

		l := baseLog.WithCtx(reqCtx)
		l.Infow("server streaming call start", "method", info.FullMethod)
		ws := &wrappedStream{
			ServerStream: ss,
			ctx:          reqCtx,
		}
		err := handler(srv, ws)
		if err != nil {
			l.Errorw("server streaming call error", "method", info.FullMethod)
			return err
		}

		l.Infow("server streaming call completed", "method", info.FullMethod)
		return nil
	}
}

// GetRequestID returns the request ID tagged onto ctx by this package's
// interceptors, delegating to requestid.FromContext.
func GetRequestID(ctx context.Context) string {
	return requestid.FromContext(ctx)
}
