package config

import (
	"fmt"
	"path/filepath"
)

const dataDirName = ".timelevel"

type Config struct {
	VaultPath    string
	DataDir      string
	StatsPath    string
	SettingsPath string
	TimelinePath string
	DBPath       string
	EffectsPath  string
	LogPath      string
}

func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	dataDir := filepath.Join(vaultPath, dataDirName)
	return Config{
		VaultPath:    vaultPath,
		DataDir:      dataDir,
		StatsPath:    filepath.Join(vaultPath, ".timestats.json"),
		SettingsPath: filepath.Join(dataDir, "settings.json"),
		TimelinePath: filepath.Join(vaultPath, "Timeline", "TimeLevel.md"),
		DBPath:       filepath.Join(dataDir, "timelevel.db"),
		EffectsPath:  filepath.Join(dataDir, "effects.json"),
		LogPath:      filepath.Join(dataDir, "timelevel.log"),
	}, nil
}
