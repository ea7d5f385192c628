package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "effect"
	serviceName       = "timelevel.effects.v1.EffectPlugin"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodCelebrate   = "/" + serviceName + "/Celebrate"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "TIMELEVEL_EFFECT_PLUGIN",
	MagicCookieValue: "timelevel",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type CelebrateRequest struct {
	Capability    string `json:"capability"`
	Level         int32  `json:"level"`
	PreviousLevel int32  `json:"previous_level"`
	Badge         string `json:"badge"`
	AtUnixMS      int64  `json:"at_unix_ms"`
	TotalText     string `json:"total_text"`
	SessionText   string `json:"session_text"`
	Language      string `json:"language"`
}

type CelebrateResponse struct {
	Performed bool   `json:"performed"`
	Message   string `json:"message"`
}

type EffectPluginServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Celebrate(ctx context.Context, in *CelebrateRequest) (*CelebrateResponse, error)
}

type EffectPluginClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Celebrate(ctx context.Context, in *CelebrateRequest) (*CelebrateResponse, error)
}

type effectPluginClient struct {
	conn *grpc.ClientConn
}

func NewEffectPluginClient(conn *grpc.ClientConn) EffectPluginClient {
	return &effectPluginClient{conn: conn}
}

func (c *effectPluginClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *effectPluginClient) Celebrate(ctx context.Context, in *CelebrateRequest) (*CelebrateResponse, error) {
	out := &CelebrateResponse{}
	if err := c.conn.Invoke(ctx, methodCelebrate, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterEffectPluginServer(server grpc.ServiceRegistrar, impl EffectPluginServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*EffectPluginServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "Celebrate",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &CelebrateRequest{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.Celebrate(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodCelebrate}
					handler := func(ctx context.Context, req any) (any, error) {
						celebration, ok := req.(*CelebrateRequest)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.Celebrate(ctx, celebration)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "effects/v1/effect_plugin.proto",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl EffectPluginServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterEffectPluginServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewEffectPluginClient(conn), nil
}

func PluginMap(impl EffectPluginServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
