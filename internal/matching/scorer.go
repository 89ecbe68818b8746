// Package matching holds the stateless matching rules: the compatibility
// scorer, the match state machine, the candidate ranker and the eligibility
// predicate. Entities stay plain data records; every rule lives here so it is
// unit-testable without a store.
package matching

import (
	"math"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
)

// relatedCareers awards partial career compatibility between neighbouring
// programs.
var relatedCareers = map[string][]string{
	"Ingeniería en Desarrollo de Software":        {"Ingeniería en Sistemas Informáticos"},
	"Ingeniería en Sistemas Informáticos":         {"Ingeniería en Desarrollo de Software"},
	"Ingeniería Industrial":                       {"Ingeniería Electromecánica"},
	"Ingeniería Electromecánica":                  {"Ingeniería Industrial", "Ingeniería en Energías Renovables"},
	"Licenciatura en Administración y Gestión":    {"Licenciatura en Contaduría Pública"},
	"Licenciatura en Contaduría Pública":          {"Licenciatura en Administración y Gestión"},
}

// Score computes the compatibility of two academic profiles as an integer in
// [0, 100]. The weights are fixed:
//
//   - identical career +40, related career +20
//   - identical campus +30
//   - semester proximity 0.2 * max(0, 100 - 10*|s1-s2|)
//   - shared academic interests +5 each, capped at +25
//
// The sum is clamped to 100 and rounded half-up. Deterministic for fixed
// inputs; callers must not pass nil profiles.
func Score(a, b *domain.AcademicProfile) int {
	score := 0.0

	if a.Career == b.Career {
		score += 40
	} else if isRelatedCareer(a.Career, b.Career) {
		score += 20
	}

	if a.Campus == b.Campus {
		score += 30
	}

	d := a.Semester - b.Semester
	if d < 0 {
		d = -d
	}
	score += 0.2 * math.Max(0, float64(100-10*d))

	common := 0
	for _, interest := range a.AcademicInterests {
		for _, other := range b.AcademicInterests {
			if interest == other {
				common++
				break
			}
		}
	}
	score += math.Min(float64(common*5), 25)

	return int(math.Round(math.Min(score, 100)))
}

func isRelatedCareer(career, other string) bool {
	for _, related := range relatedCareers[career] {
		if related == other {
			return true
		}
	}
	return false
}
