package gateway

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var authorizationKey = strings.ToLower(common.AuthorizationHeader)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(authorizationKey)
	if token != "" {
		md.Set(authorizationKey, common.BearerPrefix+token)
	}
	return metadata.NewOutgoingContext(ctx, md)
}

// UnaryClientInterceptor applies the gateway to gRPC calls. codes.Unauthenticated
// is the rejection signal; refreshes are shared with Do.
func (g *Gateway) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		var last error
		err := g.run(ctx, func(ctx context.Context, token string) (bool, error) {
			last = invoker(withAccessToken(ctx, token), method, req, reply, cc, opts...)
			if status.Code(last) == codes.Unauthenticated {
				return true, nil
			}
			return false, last
		})
		if err != nil {
			return err
		}
		return last
	}
}
