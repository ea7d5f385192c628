package dto

type SettingsOutput struct {
	SaveIntervalSeconds int
	LevelUpHours        int
	ShowSeconds         bool
	ProgressBarColor    string
	EnableAudio         bool
	EnableConfetti      bool
	PrefixText          string
	ShowFooter          bool
	Language            string
	CalendarOffset      string
	Path                string
}

type SetInput struct {
	Key   string
	Value string
}

type Entry struct {
	Key   string
	Value string
}
