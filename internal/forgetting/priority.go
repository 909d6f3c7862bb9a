package forgetting

import "time"

// Scorer computes the 0-100 urgency score used to order due review items.
// The score only orders items for presentation; due-ness itself is decided
// by the next review date.
type Scorer struct {
	// Надбавка за слабый ответ (understanding < 3)
	WeakAnswerBoost int
	// Скидка за сильный ответ (understanding >= 4)
	StrongAnswerDrop int
	// Надбавки для самых первых повторений
	FirstReviewBoost  int
	SecondReviewBoost int
	// Надбавки за просроченные повторения
	OverdueBoost    int // просрочка больше одного интервала
	FarOverdueBoost int // просрочка больше полутора интервалов
}

// NewScorer creates a scorer with the default weights
func NewScorer() *Scorer {
	return &Scorer{
		WeakAnswerBoost:   20,
		StrongAnswerDrop:  10,
		FirstReviewBoost:  15,
		SecondReviewBoost: 10,
		OverdueBoost:      15,
		FarOverdueBoost:   25,
	}
}

// InitialPriority computes the priority of a freshly created item from the
// first observed understanding. The floor of 10 guarantees every new item
// shows up in sorted results instead of drowning at zero.
func (s *Scorer) InitialPriority(understanding int) int {
	return clamp((5-understanding)*20, 10, 100)
}

// UpdatedPriority recomputes an item's priority after a completed review.
// All arguments describe the item BEFORE the update: the previous score,
// the review count before increment, the interval before the new stage is
// applied and the previous last-study date. The adjustments are additive
// and order-independent; the result is clamped to [0, 100] once at the end.
func (s *Scorer) UpdatedPriority(prevPriority, reviewCount, intervalDays int, lastStudyDate time.Time, understanding int, now time.Time) int {
	score := prevPriority

	// Слабый ответ повышает срочность, сильный - понижает
	if understanding < UnderstandingAdequate {
		score += s.WeakAnswerBoost
	} else if understanding >= UnderstandingGood {
		score -= s.StrongAnswerDrop
	}

	// Первые повторения важнее всего для закрепления
	if reviewCount == 0 {
		score += s.FirstReviewBoost
	} else if reviewCount == 1 {
		score += s.SecondReviewBoost
	}

	// Просроченные повторения поднимаем в очереди
	daysSinceLastStudy := int(now.Sub(lastStudyDate).Hours() / 24)
	if float64(daysSinceLastStudy) > float64(intervalDays)*1.5 {
		score += s.FarOverdueBoost
	} else if daysSinceLastStudy > intervalDays {
		score += s.OverdueBoost
	}

	return clamp(score, 0, 100)
}

// Difficulty derives the stored difficulty from the first observed
// understanding. It is computed once at item creation and never
// recomputed on later reviews.
func (s *Scorer) Difficulty(understanding int) int {
	return clamp(6-understanding, 1, 5)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
