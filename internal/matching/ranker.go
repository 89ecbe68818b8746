package matching

import (
	"sort"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
)

// ScoredCandidate pairs a candidate with their compatibility toward the
// requesting user.
type ScoredCandidate struct {
	User          *domain.User
	Compatibility int
}

// Rank filters the candidate pool down to eligible users outside the
// exclusion set, scores each against the requester's profile and returns the
// top limit candidates in descending score order. Equal scores keep their
// input order. An empty pool or a fully excluded one yields an empty slice,
// never an error.
func Rank(me *domain.AcademicProfile, pool []*domain.User, exclude map[string]bool, limit int) []ScoredCandidate {
	scored := make([]ScoredCandidate, 0, len(pool))
	for _, candidate := range pool {
		if exclude[candidate.ID] || candidate.ID == me.UserID {
			continue
		}
		if !EligibleForMatching(candidate) {
			continue
		}
		scored = append(scored, ScoredCandidate{
			User:          candidate,
			Compatibility: Score(me, candidate.AcademicProfile),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Compatibility > scored[j].Compatibility
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
