package scoring

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"zepth/tender-evaluator/internal/models"
)

// SortKeyOverall orders bidders by their aggregated overall score. Any other
// key string is interpreted as a category id and orders by that category's
// score.
const (
	SortKeyOverall = "overallScore"
	SortKeyName    = "name"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// RankedBidder is a bidder annotated with its value for the active sort key
// and its delta against whichever bidder ranks first in the current order.
// The first entry always has Delta 0.
type RankedBidder struct {
	Bidder models.Bidder
	Score  float64
	Delta  float64
}

// Rank orders evaluated bidders by the given key and direction. Bidders
// without an evaluation are excluded entirely, never scored as zero. Numeric
// keys sort stably so equal scores keep their input order; the name key uses
// locale-aware collation. A bidder missing a score for a category key ranks
// with score 0 for that category.
func Rank(bidders []models.Bidder, key string, direction Direction) []RankedBidder {
	ranked := make([]RankedBidder, 0, len(bidders))
	for _, b := range bidders {
		if b.Evaluation == nil {
			continue
		}
		ranked = append(ranked, RankedBidder{Bidder: b, Score: keyScore(b, key)})
	}

	if key == SortKeyName {
		coll := collate.New(language.English)
		sort.SliceStable(ranked, func(i, j int) bool {
			cmp := coll.CompareString(ranked[i].Bidder.Name, ranked[j].Bidder.Name)
			if direction == Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	} else {
		sort.SliceStable(ranked, func(i, j int) bool {
			if direction == Descending {
				return ranked[i].Score > ranked[j].Score
			}
			return ranked[i].Score < ranked[j].Score
		})
	}

	// Deltas are relative to the current leader, i.e. position 0 after
	// sorting, so an ascending table reads against its own top row.
	if len(ranked) > 0 {
		top := ranked[0].Score
		for i := range ranked {
			ranked[i].Delta = ranked[i].Score - top
		}
	}

	return ranked
}

func keyScore(b models.Bidder, key string) float64 {
	switch key {
	case SortKeyOverall:
		return float64(b.Evaluation.OverallScore)
	case SortKeyName:
		return 0
	default:
		if cs, ok := b.Evaluation.CategoryScores[key]; ok {
			return cs.Score
		}
		return 0
	}
}
