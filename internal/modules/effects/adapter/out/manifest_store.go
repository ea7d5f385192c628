package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"timelevel/internal/modules/effects/domain"
	effectsout "timelevel/internal/modules/effects/port/out"
	"timelevel/internal/platform/jsonc"
)

// FileManifestStore reads the effect plugin list kept next to the settings
// document. The file is JSONC, so users can comment plugins out.
type FileManifestStore struct {
	path      string
	vaultPath string
}

// NewFileManifestStore reads manifests from path. Relative plugin binaries
// resolve against vaultPath.
func NewFileManifestStore(path, vaultPath string) effectsout.ManifestStore {
	return &FileManifestStore{path: path, vaultPath: vaultPath}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []domain.Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read effect manifests %s: %w", s.path, err)
	}
	cleaned := bytes.TrimSpace(jsonc.Clean(raw))
	if len(cleaned) == 0 {
		return []domain.Manifest{}, nil
	}

	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(cleaned))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode effect manifests %s: %w", s.path, err)
	}

	seen := make(map[string]struct{}, len(manifests))
	for i := range manifests {
		m := &manifests[i]
		if _, dup := seen[m.Name]; dup {
			return nil, fmt.Errorf("effect plugin %q is listed twice in %s", m.Name, s.path)
		}
		seen[m.Name] = struct{}{}
		if m.Binary != "" && !filepath.IsAbs(m.Binary) {
			m.Binary = filepath.Join(s.vaultPath, m.Binary)
		}
	}
	return manifests, nil
}
