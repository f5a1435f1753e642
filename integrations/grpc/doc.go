// Package grpc provides gRPC server interceptors that check structured secrets.
//
// Both unary and streaming interceptors read the secret from gRPC metadata,
// verify its checksum and prefix through core.Core, and make the parsed
// token.Secret available in the request context.
//
// # Basic Usage
//
//	import (
//	    "log"
//	    "net"
//
//	    secretsgrpc "github.com/sssecrets/go-sssecrets/integrations/grpc"
//	    "github.com/sssecrets/go-sssecrets/token"
//	    "google.golang.org/grpc"
//	)
//
//	func main() {
//	    engine, err := token.New("acme", "pat")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    interceptor, err := secretsgrpc.New(
//	        secretsgrpc.WithEngine(engine),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    server := grpc.NewServer(
//	        grpc.UnaryInterceptor(interceptor.UnaryServerInterceptor()),
//	        grpc.StreamInterceptor(interceptor.StreamServerInterceptor()),
//	    )
//
//	    listener, _ := net.Listen("tcp", ":50051")
//	    server.Serve(listener)
//	}
//
// # Advanced Configuration
//
//	interceptor, err := secretsgrpc.New(
//	    secretsgrpc.WithEngine(engine),
//	    secretsgrpc.WithLogger(slog.Default()),
//	    secretsgrpc.WithFormats(core.FormatToken),
//	    secretsgrpc.WithTokenExtractor(secretsgrpc.MetadataFieldTokenExtractor("x-api-key")),
//	    secretsgrpc.WithExcludedMethods("/grpc.health.v1.Health/Check"),
//	)
//
// # Status Codes
//
// DefaultErrorHandler maps a missing, malformed or tampered secret to
// codes.Unauthenticated, a foreign prefix or disallowed format to
// codes.PermissionDenied, and a badly formed authorization entry to
// codes.InvalidArgument.
//
// # Secret Retrieval
//
//	func (s *server) GetUser(ctx context.Context, req *pb.GetUserRequest) (*pb.User, error) {
//	    secret, err := secretsgrpc.GetSecret(ctx)
//	    if err != nil {
//	        return nil, status.Error(codes.Internal, "failed to get secret")
//	    }
//	    return s.users.ByToken(ctx, secret.Raw)
//	}
package grpc
