package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Capability names the kind of celebration a plugin can perform. It decides
// which user switch gates the plugin.
type Capability string

const (
	CapabilityAudio  Capability = "audio"
	CapabilityVisual Capability = "visual"
)

var ErrChecksumMismatch = errors.New("effect plugin checksum mismatch")

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("effect plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("effect plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("effect plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("effect plugin sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("effect plugin capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilityAudio, CapabilityVisual:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// Celebration is what a plugin receives for one level-up.
type Celebration struct {
	Capability    Capability
	Level         int
	PreviousLevel int
	Badge         string
	At            time.Time
	TotalText     string
	SessionText   string
	Language      string
}

func (c Celebration) Validate() error {
	if err := c.Capability.Validate(); err != nil {
		return err
	}
	if c.Level < 2 {
		return fmt.Errorf("celebration level must be at least 2, got %d", c.Level)
	}
	if c.PreviousLevel >= c.Level {
		return fmt.Errorf("celebration level %d does not exceed previous %d", c.Level, c.PreviousLevel)
	}
	return nil
}
