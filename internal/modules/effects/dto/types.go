package dto

import "time"

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type CelebrateInput struct {
	Capability    string
	Level         int
	PreviousLevel int
	Badge         string
	At            time.Time
	TotalText     string
	SessionText   string
	Language      string
}

type CelebrateFailure struct {
	Plugin string
	Error  string
}

type CelebrateOutput struct {
	Delivered []string
	Failed    []CelebrateFailure
}
