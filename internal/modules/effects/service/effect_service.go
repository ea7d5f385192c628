package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"timelevel/internal/modules/effects/domain"
	"timelevel/internal/modules/effects/dto"
	effectsout "timelevel/internal/modules/effects/port/out"
	"timelevel/internal/platform/logging"
)

type EffectService struct {
	store  effectsout.ManifestStore
	host   effectsout.Host
	logger *slog.Logger
}

func NewEffectService(store effectsout.ManifestStore, host effectsout.Host, logger *slog.Logger) *EffectService {
	return &EffectService{store: store, host: host, logger: logging.OrDiscard(logger)}
}

func (s *EffectService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *EffectService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// Celebrate delivers one celebration to every enabled plugin that declares
// the requested capability. Plugins run concurrently and fail independently;
// only a broken manifest file fails the whole call.
func (s *EffectService) Celebrate(ctx context.Context, input dto.CelebrateInput) (dto.CelebrateOutput, error) {
	celebration := domain.Celebration{
		Capability:    domain.Capability(input.Capability),
		Level:         input.Level,
		PreviousLevel: input.PreviousLevel,
		Badge:         input.Badge,
		At:            input.At,
		TotalText:     input.TotalText,
		SessionText:   input.SessionText,
		Language:      input.Language,
	}
	if err := celebration.Validate(); err != nil {
		return dto.CelebrateOutput{}, err
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return dto.CelebrateOutput{}, err
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		out = dto.CelebrateOutput{Delivered: []string{}, Failed: []dto.CelebrateFailure{}}
	)
	for _, m := range manifests {
		if !m.Enabled || !m.HasCapability(celebration.Capability) {
			continue
		}
		wg.Add(1)
		go func(m domain.Manifest) {
			defer wg.Done()
			err := s.deliver(ctx, m, celebration)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("effect plugin failed", "effect", m.Name, "level", celebration.Level, "err", err)
				out.Failed = append(out.Failed, dto.CelebrateFailure{Plugin: m.Name, Error: err.Error()})
				return
			}
			out.Delivered = append(out.Delivered, m.Name)
		}(m)
	}
	wg.Wait()
	sort.Strings(out.Delivered)
	sort.Slice(out.Failed, func(i, j int) bool { return out.Failed[i].Plugin < out.Failed[j].Plugin })
	return out, nil
}

func (s *EffectService) deliver(ctx context.Context, m domain.Manifest, celebration domain.Celebration) error {
	if err := checksumMatches(m.Binary, m.SHA256); err != nil {
		return err
	}
	if s.host == nil {
		return fmt.Errorf("effect host is not configured")
	}
	return s.host.Celebrate(ctx, m, celebration)
}

func (s *EffectService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate effect plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read effect plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
