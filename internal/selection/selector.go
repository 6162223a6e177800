package selection

import (
	"math/rand"
	"sort"
	"time"

	"learning-service/internal/models"
	"learning-service/internal/srs"
)

// Selector picks the next study question from a candidate pool using the
// user's progress map. Due reviews always win over fresh material.
type Selector struct {
	rand *rand.Rand
}

// NewSelector creates a selector with its own randomness source.
func NewSelector() *Selector {
	return &Selector{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SelectNext returns the single best next question, or nil when the pool
// is empty after filtering. A nil result is a valid outcome, not an error.
//
// Candidates are partitioned into tiers evaluated in strict order:
//  1. overdue reviews (ranked by priority score)
//  2. due reviews (same ranking)
//  3. learning questions (random, weak-category biased)
//  4. never-attempted questions (random, capped by MaxNewQuestions)
//  5. familiar questions (random, weak-category biased)
//  6. mastered questions (random, last resort)
func (s *Selector) SelectNext(
	candidates []Candidate,
	progress map[string]*models.QuestionProgress,
	now time.Time,
	opts *Options,
) *Candidate {
	if opts == nil {
		opts = DefaultOptions()
	}

	excluded := make(map[string]bool, len(opts.ExcludeIDs))
	for _, id := range opts.ExcludeIDs {
		excluded[id] = true
	}

	var overdueReviews, dueReviews []Candidate
	var learning, familiar, mastered, fresh []Candidate

	for _, c := range candidates {
		if excluded[c.ID] {
			continue
		}
		if opts.Difficulty != "" && c.Difficulty != opts.Difficulty {
			continue
		}
		if opts.Category != "" && c.Category != opts.Category {
			continue
		}

		qp := progress[c.ID]
		if qp == nil || qp.Attempts == 0 {
			fresh = append(fresh, c)
			continue
		}

		if opts.IncludeReviews && srs.IsDue(qp.NextReviewDate, now) {
			if srs.IsOverdue(qp.NextReviewDate, now) {
				overdueReviews = append(overdueReviews, c)
			} else {
				dueReviews = append(dueReviews, c)
			}
			continue
		}

		switch qp.MasteryLevel {
		case models.MasteryLearning:
			learning = append(learning, c)
		case models.MasteryFamiliar:
			familiar = append(familiar, c)
		case models.MasteryMastered:
			mastered = append(mastered, c)
		default:
			fresh = append(fresh, c)
		}
	}

	if len(overdueReviews) > 0 {
		return s.highestPriority(overdueReviews, progress, now)
	}
	if len(dueReviews) > 0 {
		return s.highestPriority(dueReviews, progress, now)
	}

	var weakCategories map[string]bool
	if opts.PreferWeakCategories {
		weakCategories = WeakCategories(candidates, progress)
	}

	if len(learning) > 0 {
		return s.randomPick(s.biasToWeak(learning, weakCategories))
	}
	if len(fresh) > 0 && opts.MaxNewQuestions > 0 {
		return s.randomPick(fresh)
	}
	if len(familiar) > 0 {
		return s.randomPick(s.biasToWeak(familiar, weakCategories))
	}
	if len(mastered) > 0 {
		return s.randomPick(mastered)
	}

	return nil
}

// SelectMany selects up to count questions, excluding each pick from the
// next round. It returns fewer items when the pool runs out, never an
// error.
func (s *Selector) SelectMany(
	candidates []Candidate,
	progress map[string]*models.QuestionProgress,
	now time.Time,
	count int,
	opts *Options,
) []Candidate {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Copy so the caller's exclusion list is not mutated.
	round := *opts
	round.ExcludeIDs = append([]string{}, opts.ExcludeIDs...)

	selected := make([]Candidate, 0, count)
	for i := 0; i < count; i++ {
		next := s.SelectNext(candidates, progress, now, &round)
		if next == nil {
			break
		}
		selected = append(selected, *next)
		round.ExcludeIDs = append(round.ExcludeIDs, next.ID)
	}
	return selected
}

// highestPriority ranks due questions by overdue-ness and mastery need.
// Sort is stable, so equal scores keep candidate order.
func (s *Selector) highestPriority(
	pool []Candidate,
	progress map[string]*models.QuestionProgress,
	now time.Time,
) *Candidate {
	ranked := make([]Candidate, len(pool))
	copy(ranked, pool)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi := srs.Priority(progress[ranked[i].ID].NextReviewDate, progress[ranked[i].ID].MasteryLevel, now)
		pj := srs.Priority(progress[ranked[j].ID].NextReviewDate, progress[ranked[j].ID].MasteryLevel, now)
		return pi > pj
	})

	return &ranked[0]
}

// biasToWeak restricts the pool to weak categories when that leaves a
// non-empty subset; otherwise the full pool is kept.
func (s *Selector) biasToWeak(pool []Candidate, weakCategories map[string]bool) []Candidate {
	if len(weakCategories) == 0 {
		return pool
	}
	weak := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if weakCategories[c.Category] {
			weak = append(weak, c)
		}
	}
	if len(weak) == 0 {
		return pool
	}
	return weak
}

func (s *Selector) randomPick(pool []Candidate) *Candidate {
	if len(pool) == 0 {
		return nil
	}
	pick := pool[s.rand.Intn(len(pool))]
	return &pick
}

// WeakCategories joins the candidate list's category data with the
// progress map and returns categories answered with under 70% accuracy.
// Categories without any attempts are not weak, just unknown.
func WeakCategories(candidates []Candidate, progress map[string]*models.QuestionProgress) map[string]bool {
	type categoryStats struct {
		correct int
		total   int
	}
	stats := make(map[string]*categoryStats)

	for _, c := range candidates {
		qp := progress[c.ID]
		if qp == nil || qp.Attempts == 0 {
			continue
		}
		cs, ok := stats[c.Category]
		if !ok {
			cs = &categoryStats{}
			stats[c.Category] = cs
		}
		cs.correct += qp.CorrectCount
		cs.total += qp.Attempts
	}

	weak := make(map[string]bool)
	for category, cs := range stats {
		if cs.total > 0 && float64(cs.correct)/float64(cs.total) < weakAccuracyThreshold {
			weak[category] = true
		}
	}
	return weak
}

// RecommendDifficulty suggests a difficulty from the overall mastery rate:
// under 30% mastered stays easy, under 70% medium, beyond that hard.
func RecommendDifficulty(progress map[string]*models.QuestionProgress) string {
	if len(progress) == 0 {
		return "easy"
	}

	mastered := 0
	for _, qp := range progress {
		if qp.MasteryLevel == models.MasteryMastered {
			mastered++
		}
	}

	masteryRate := float64(mastered) / float64(len(progress))
	switch {
	case masteryRate < 0.3:
		return "easy"
	case masteryRate < 0.7:
		return "medium"
	default:
		return "hard"
	}
}
