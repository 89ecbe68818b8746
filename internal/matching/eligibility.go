package matching

import "github.com/adrianmtzc/campusmatch-backend/internal/domain"

// EligibleForMatching is the single eligibility predicate gating both actors
// and candidates: verified email, completed profile, active account, at least
// one photo and an academic profile with non-empty career and campus.
func EligibleForMatching(u *domain.User) bool {
	if u == nil || u.AcademicProfile == nil {
		return false
	}
	return u.IsEmailVerified &&
		u.IsProfileComplete &&
		u.IsActive &&
		len(u.Photos) > 0 &&
		u.AcademicProfile.Career != "" &&
		u.AcademicProfile.Campus != ""
}

// CanJoinEvent checks an academic profile against an event's entry rules:
// campus match when the event is campus-scoped, career allow-list when set,
// and minimum semester.
func CanJoinEvent(e *domain.Event, p *domain.AcademicProfile) bool {
	if p == nil {
		return false
	}
	if e.Campus != "" && e.Campus != p.Campus {
		return false
	}
	if len(e.AllowedCareers) > 0 {
		allowed := false
		for _, career := range e.AllowedCareers {
			if career == p.Career {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}
	if e.MinSemester > 0 && p.Semester < e.MinSemester {
		return false
	}
	return true
}

// CanJoinGroup checks an academic profile against a study group's entry
// rules: same campus, same career when the group is career-specific, and
// semester within two of the group's when set.
func CanJoinGroup(g *domain.StudyGroup, p *domain.AcademicProfile) bool {
	if p == nil {
		return false
	}
	if g.Campus != p.Campus {
		return false
	}
	if g.Career != nil && *g.Career != "" && *g.Career != p.Career {
		return false
	}
	if g.Semester != nil {
		d := *g.Semester - p.Semester
		if d < 0 {
			d = -d
		}
		if d > 2 {
			return false
		}
	}
	return true
}
