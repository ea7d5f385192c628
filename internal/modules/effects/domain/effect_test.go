package domain_test

import (
	"strings"
	"testing"
	"time"

	"timelevel/internal/modules/effects/domain"
)

func validManifest() domain.Manifest {
	return domain.Manifest{
		Name:         "chime",
		Version:      "1.0.0",
		Binary:       "/opt/chime",
		SHA256:       strings.Repeat("a", 64),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilityAudio},
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*domain.Manifest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*domain.Manifest) {}},
		{name: "missing name", mutate: func(m *domain.Manifest) { m.Name = "" }, wantErr: true},
		{name: "missing version", mutate: func(m *domain.Manifest) { m.Version = "" }, wantErr: true},
		{name: "missing binary", mutate: func(m *domain.Manifest) { m.Binary = "" }, wantErr: true},
		{name: "uppercase checksum", mutate: func(m *domain.Manifest) { m.SHA256 = strings.Repeat("A", 64) }, wantErr: true},
		{name: "no capabilities", mutate: func(m *domain.Manifest) { m.Capabilities = nil }, wantErr: true},
		{name: "unknown capability", mutate: func(m *domain.Manifest) {
			m.Capabilities = []domain.Capability{"haptic"}
		}, wantErr: true},
		{name: "duplicate capability", mutate: func(m *domain.Manifest) {
			m.Capabilities = []domain.Capability{domain.CapabilityAudio, domain.CapabilityAudio}
		}, wantErr: true},
		{name: "both capabilities", mutate: func(m *domain.Manifest) {
			m.Capabilities = []domain.Capability{domain.CapabilityAudio, domain.CapabilityVisual}
		}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := validManifest()
			tc.mutate(&m)
			err := m.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCelebrationValidate(t *testing.T) {
	t.Parallel()
	ok := domain.Celebration{Capability: domain.CapabilityVisual, Level: 3, PreviousLevel: 2, At: time.Now()}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []domain.Celebration{
		{Capability: "smell", Level: 3, PreviousLevel: 2},
		{Capability: domain.CapabilityAudio, Level: 1, PreviousLevel: 0},
		{Capability: domain.CapabilityAudio, Level: 3, PreviousLevel: 3},
	} {
		if err := bad.Validate(); err == nil {
			t.Fatalf("expected error for %+v", bad)
		}
	}
}
