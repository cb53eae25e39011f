package bridge

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/cquiroz/lucuma-itc/internal/itctypes"
)

// GRPCBridge is the optional remote transport for the legacy bridge: an
// operator may point it at a gRPC numeric service instead of a local
// subprocess. The canonical text document travels as a
// wrapperspb.StringValue payload on both legs — there is no richer wire
// schema to version, since the document itself is the stable contract.
type GRPCBridge struct {
	conn   *grpc.ClientConn
	addr   string
	logger *slog.Logger
}

const (
	graphsMethod = "/itc.v1.LegacyCalculator/CalculateGraphs"
	exposureMethod = "/itc.v1.LegacyCalculator/CalculateExposureTime"
)

func NewGRPCBridge(addr string, logger *slog.Logger) (*GRPCBridge, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("bridge: connect to legacy gRPC service %q: %w", addr, err)
	}
	logger.Info("legacy calculator gRPC bridge connected", "addr", addr)
	return &GRPCBridge{conn: conn, addr: addr, logger: logger}, nil
}

func (b *GRPCBridge) Close() error {
	return b.conn.Close()
}

func (b *GRPCBridge) invoke(ctx context.Context, method, doc string) (string, error) {
	in := wrapperspb.String(doc)
	out := &wrapperspb.StringValue{}
	if err := b.conn.Invoke(ctx, method, in, out); err != nil {
		return "", fmt.Errorf("bridge: grpc call %s: %w", method, err)
	}
	return out.GetValue(), nil
}

func (b *GRPCBridge) CalculateGraphs(ctx context.Context, req *itctypes.CalculationRequest) (*itctypes.GraphResult, error) {
	resp, err := b.invoke(ctx, graphsMethod, EncodeRequest(req))
	if err != nil {
		return nil, err
	}
	data, errMsg, ok := parseResponse(resp)
	if !ok {
		if errMsg != "" {
			return nil, itctypes.NewUpstreamError(errMsg)
		}
		return nil, unknownResultError()
	}
	return parseGraphResult(data)
}

func (b *GRPCBridge) CalculateExposureTime(ctx context.Context, req *itctypes.CalculationRequest) (*itctypes.ExposurePlan, error) {
	resp, err := b.invoke(ctx, exposureMethod, EncodeRequest(req))
	if err != nil {
		return nil, err
	}
	data, errMsg, ok := parseResponse(resp)
	if !ok {
		if errMsg != "" {
			return nil, itctypes.NewUpstreamError(errMsg)
		}
		return nil, unknownResultError()
	}
	return parseExposurePlan(data)
}
