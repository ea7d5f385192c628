package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	effectsrpc "timelevel/internal/modules/effects/adapter/out/rpc"
	"timelevel/internal/modules/effects/domain"
	effectsout "timelevel/internal/modules/effects/port/out"
	apperrors "timelevel/internal/platform/errors"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost launches an effect plugin per call and talks to it over go-plugin's
// gRPC transport. Plugin stderr and handshake chatter go to logOutput.
type GRPCHost struct {
	logOutput io.Writer
}

func NewGRPCHost(logOutput io.Writer) effectsout.Host {
	if logOutput == nil {
		logOutput = io.Discard
	}
	return &GRPCHost{logOutput: logOutput}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, timeoutOr(callCtx, manifest.Name, fmt.Errorf("get metadata: %w", err))
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) Celebrate(ctx context.Context, manifest domain.Manifest, celebration domain.Celebration) error {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.Celebrate(callCtx, &effectsrpc.CelebrateRequest{
		Capability:    string(celebration.Capability),
		Level:         int32(celebration.Level),
		PreviousLevel: int32(celebration.PreviousLevel),
		Badge:         celebration.Badge,
		AtUnixMS:      celebration.At.UnixMilli(),
		TotalText:     celebration.TotalText,
		SessionText:   celebration.SessionText,
		Language:      celebration.Language,
	})
	if err != nil {
		return timeoutOr(callCtx, manifest.Name, fmt.Errorf("celebrate: %w", err))
	}
	if !response.Performed {
		return fmt.Errorf("plugin %s declined celebration: %s", manifest.Name, response.Message)
	}
	return nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (effectsrpc.EffectPluginClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  effectsrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          effectsrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Stderr:           h.logOutput,
		Logger: hclog.New(&hclog.LoggerOptions{
			Name:   "effect." + manifest.Name,
			Output: h.logOutput,
			Level:  hclog.Warn,
		}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start effect plugin %s: %w", manifest.Name, err)
	}
	raw, err := rpcClient.Dispense(effectsrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense effect plugin: %w", err)
	}
	typed, ok := raw.(effectsrpc.EffectPluginClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("effect plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

func timeoutOr(callCtx context.Context, name string, err error) error {
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", apperrors.ErrPluginTimeout, name)
	}
	return err
}
