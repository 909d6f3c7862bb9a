package forgetting

// Engine implements the staged forgetting-curve model. Each review item
// sits on one of seven stages; the stage indexes a fixed table of review
// intervals, and the self-reported understanding of a completed review
// moves the item up or down the table.
type Engine struct {
	// Интервалы повторения в днях для каждой стадии кривой забывания
	StageIntervals []int
}

// Stage bounds of the forgetting curve
const (
	MinStage = 1
	MaxStage = 7
)

// Understanding levels on the 1-5 self-report scale
const (
	// Complete blackout, nothing recalled
	UnderstandingNone = 1
	// Weak recall, most of the material gone
	UnderstandingWeak = 2
	// Adequate recall with noticeable gaps
	UnderstandingAdequate = 3
	// Good recall with minor hesitation
	UnderstandingGood = 4
	// Full confident recall
	UnderstandingFull = 5
)

// NewEngine creates an engine with the default stage-to-interval table
func NewEngine() *Engine {
	return &Engine{
		// Стадии 1-7: 1, 3, 7, 14, 30, 60 и 120 дней
		StageIntervals: []int{1, 3, 7, 14, 30, 60, 120},
	}
}

// NextStage returns the stage an item moves to after a review with the
// given understanding. Strong recall (4-5) lengthens the interval by one
// stage, weak recall (1-2) shortens it by one, adequate recall (3) holds.
func (e *Engine) NextStage(currentStage, understanding int) int {
	switch {
	case understanding >= UnderstandingGood:
		// Хороший ответ - продвигаемся по кривой, но не выше последней стадии
		if currentStage >= MaxStage {
			return MaxStage
		}
		return currentStage + 1
	case understanding < UnderstandingAdequate:
		// Слабый ответ - откатываемся на одну стадию назад
		if currentStage <= MinStage {
			return MinStage
		}
		return currentStage - 1
	default:
		return currentStage
	}
}

// IntervalForStage returns the review interval in days for a stage.
// Persisted stages are always in [MinStage, MaxStage]; anything else
// falls back to the first interval so one bad record cannot fail a
// whole scheduling run.
func (e *Engine) IntervalForStage(stage int) int {
	if stage < MinStage || stage > MaxStage {
		return e.StageIntervals[0]
	}
	return e.StageIntervals[stage-1]
}
