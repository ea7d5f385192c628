// Package i18n holds the localization tables for the two supported languages.
// Tables are plain values handed to formatting code; nothing here reads settings.
package i18n

import "strings"

type Language string

const (
	// Chinese is the primary language and the default.
	Chinese Language = "zh"
	English Language = "en"
)

func Parse(raw string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(raw))) {
	case Chinese, "primary":
		return Chinese, true
	case English, "secondary":
		return English, true
	}
	return Chinese, false
}

// Units are the duration unit labels consumed by the duration formatter.
type Units struct {
	Hour string
	Min  string
	Sec  string
}

type Table struct {
	Units Units

	TimeTracker   string
	Total         string
	Session       string
	LevelProgress string
	LevelTime     string
	LevelNeed     string
	By            string
	HeatmapTitle  string
	MinUnit       string
	Prefix        string
	Weekdays      [7]string

	LevelReached string
	LevelTitle   string
	TotalSoFar   string
	SessionSoFar string
	Cheer        string
	Comma        string
	Period       string
}

var tables = map[Language]Table{
	Chinese: {
		Units:         Units{Hour: "小时", Min: "分", Sec: "秒"},
		TimeTracker:   "时间追踪",
		Total:         "累计用时",
		Session:       "本次用时：",
		LevelProgress: "等级进度",
		LevelTime:     "本级用时",
		LevelNeed:     "升级还需",
		By:            "by PageSecOnd",
		HeatmapTitle:  "热力图",
		MinUnit:       "分钟",
		Prefix:        "累计",
		Weekdays:      [7]string{"日", "一", "二", "三", "四", "五", "六"},
		LevelReached:  "升级至",
		LevelTitle:    "升级到",
		TotalSoFar:    "已累计用时：",
		SessionSoFar:  "本次会话：",
		Cheer:         "干得漂亮，继续加油！",
		Comma:         "，",
		Period:        "。",
	},
	English: {
		Units:         Units{Hour: "h", Min: "min", Sec: "s"},
		TimeTracker:   "Time Tracker",
		Total:         "Total Time",
		Session:       "Session:",
		LevelProgress: "Level Progress",
		LevelTime:     "Time This Level",
		LevelNeed:     "Time to Next Level",
		By:            "by PageSecOnd",
		HeatmapTitle:  "Heatmap",
		MinUnit:       "min",
		Prefix:        "Total",
		Weekdays:      [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		LevelReached:  "reached",
		LevelTitle:    "Level up to",
		TotalSoFar:    "Total so far: ",
		SessionSoFar:  "this session: ",
		Cheer:         "Great work, keep going!",
		Comma:         ", ",
		Period:        ". ",
	},
}

// For returns the table for lang, falling back to the primary language.
func For(lang Language) Table {
	if table, ok := tables[lang]; ok {
		return table
	}
	return tables[Chinese]
}

// IsDefaultPrefix reports whether prefix is a stock prefix of lang, including
// the label older releases stored as the Chinese default.
func IsDefaultPrefix(lang Language, prefix string) bool {
	if prefix == For(lang).Prefix {
		return true
	}
	return lang == Chinese && prefix == "累计用时前缀"
}
