package selection

import "math"

// Candidate is a question as seen by the selector: catalog metadata only,
// progress is looked up separately.
type Candidate struct {
	ID         string   `json:"id"`
	Difficulty string   `json:"difficulty"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
}

// Options controls filtering and tier behavior for a selection call.
type Options struct {
	Difficulty           string   `json:"difficulty"`
	Category             string   `json:"category"`
	ExcludeIDs           []string `json:"exclude_ids"`
	PreferWeakCategories bool     `json:"prefer_weak_categories"`
	MaxNewQuestions      int      `json:"max_new_questions"` // 0 disables new questions
	IncludeReviews       bool     `json:"include_reviews"`
}

// DefaultOptions returns options with reviews enabled and no cap on new
// questions.
func DefaultOptions() *Options {
	return &Options{
		MaxNewQuestions: math.MaxInt32,
		IncludeReviews:  true,
	}
}

// weakAccuracyThreshold marks a category as weak when its answer accuracy
// falls below it.
const weakAccuracyThreshold = 0.7
