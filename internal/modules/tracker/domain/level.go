package domain

// Evaluation is the derived level view of a total.
type Evaluation struct {
	Level             int
	Progress          float64
	CurrentLevelBase  int64
	NextLevelBase     int64
	TimeThisLevelMs   int64
	TimeToNextLevelMs int64
	LeveledUp         bool
}

var badges = [...]string{"⭐", "🌱", "❤️", "♟️", "🍃", "🔥", "⛰️", "💎", "👑", "🐉"}

// Badge returns the icon for a level; levels past the table share one icon.
func Badge(level int) string {
	if level < 1 {
		level = 1
	}
	if level > len(badges) {
		return "♾️"
	}
	return badges[level-1]
}

func levelSpan(hoursPerLevel int) int64 {
	if hoursPerLevel < 1 {
		hoursPerLevel = 1
	}
	return int64(hoursPerLevel) * MsPerHour
}

// LevelFor is floor(total / span) + 1, never below 1.
func LevelFor(totalMs int64, hoursPerLevel int) int {
	if totalMs < 0 {
		totalMs = 0
	}
	return int(totalMs/levelSpan(hoursPerLevel)) + 1
}

// Evaluate derives the level and progress of totalMs and reports a rising edge
// against lastObservedLevel.
func Evaluate(totalMs int64, hoursPerLevel int, lastObservedLevel int) Evaluation {
	if totalMs < 0 {
		totalMs = 0
	}
	span := levelSpan(hoursPerLevel)
	level := int(totalMs/span) + 1
	current := int64(level-1) * span
	next := int64(level) * span

	progress := float64(totalMs-current) / float64(next-current)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	remaining := next - totalMs
	if remaining < 0 {
		remaining = 0
	}
	return Evaluation{
		Level:             level,
		Progress:          progress,
		CurrentLevelBase:  current,
		NextLevelBase:     next,
		TimeThisLevelMs:   totalMs - current,
		TimeToNextLevelMs: remaining,
		LeveledUp:         level > lastObservedLevel,
	}
}

// EdgeDetector remembers the level of the previous evaluation. It starts at 1;
// Prime moves it to the level of a freshly loaded total so that only
// transitions observed while running fire.
type EdgeDetector struct {
	last int
}

func NewEdgeDetector() EdgeDetector {
	return EdgeDetector{last: 1}
}

func (d *EdgeDetector) Prime(totalMs int64, hoursPerLevel int) {
	d.last = LevelFor(totalMs, hoursPerLevel)
}

// Observe evaluates and stores the new level whether it rose or fell.
func (d *EdgeDetector) Observe(totalMs int64, hoursPerLevel int) Evaluation {
	if d.last < 1 {
		d.last = 1
	}
	eval := Evaluate(totalMs, hoursPerLevel, d.last)
	d.last = eval.Level
	return eval
}

func (d EdgeDetector) Last() int {
	if d.last < 1 {
		return 1
	}
	return d.last
}
