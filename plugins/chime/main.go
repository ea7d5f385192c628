package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	effectsrpc "timelevel/internal/modules/effects/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

// chime is the reference effect plugin. It rings the bell for audio
// celebrations and prints a banner for visual ones, both on stderr. The host
// passes bell characters to the terminal and logs the rest.
type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *effectsrpc.Empty) (*effectsrpc.Metadata, error) {
	return &effectsrpc.Metadata{
		Name:         "chime",
		Version:      "1.0.0",
		Capabilities: []string{"audio", "visual"},
	}, nil
}

func (s *server) Celebrate(_ context.Context, in *effectsrpc.CelebrateRequest) (*effectsrpc.CelebrateResponse, error) {
	switch in.Capability {
	case "audio":
		fmt.Fprintln(os.Stderr, strings.Repeat("\a", int(min(max(in.Level-in.PreviousLevel, 1), 3))))
		return &effectsrpc.CelebrateResponse{Performed: true, Message: "rang"}, nil
	case "visual":
		fmt.Fprintf(os.Stderr, "%s level %d %s\n", strings.Repeat("*", 8), in.Level, in.Badge)
		return &effectsrpc.CelebrateResponse{Performed: true, Message: "banner"}, nil
	default:
		return &effectsrpc.CelebrateResponse{Performed: false, Message: "unsupported capability " + in.Capability}, nil
	}
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: effectsrpc.HandshakeConfig,
		Plugins:         effectsrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
