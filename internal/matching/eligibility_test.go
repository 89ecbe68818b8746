package matching

import (
	"testing"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEligibleForMatching(t *testing.T) {
	base := func() *domain.User { return eligibleUser("u1", "Ingeniería Industrial", "Tuxtla", 4) }

	tests := []struct {
		name   string
		mutate func(*domain.User)
		want   bool
	}{
		{name: "fully eligible", mutate: func(u *domain.User) {}, want: true},
		{name: "unverified email", mutate: func(u *domain.User) { u.IsEmailVerified = false }},
		{name: "incomplete profile", mutate: func(u *domain.User) { u.IsProfileComplete = false }},
		{name: "deactivated", mutate: func(u *domain.User) { u.IsActive = false }},
		{name: "no photos", mutate: func(u *domain.User) { u.Photos = nil }},
		{name: "no academic profile", mutate: func(u *domain.User) { u.AcademicProfile = nil }},
		{name: "empty career", mutate: func(u *domain.User) { u.AcademicProfile.Career = "" }},
		{name: "empty campus", mutate: func(u *domain.User) { u.AcademicProfile.Campus = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := base()
			tt.mutate(u)
			assert.Equal(t, tt.want, EligibleForMatching(u))
		})
	}

	t.Run("nil user", func(t *testing.T) {
		assert.False(t, EligibleForMatching(nil))
	})
}

func TestCanJoinEvent(t *testing.T) {
	p := &domain.AcademicProfile{Career: "Ingeniería en Desarrollo de Software", Campus: "Tuxtla", Semester: 5}

	tests := []struct {
		name  string
		event *domain.Event
		want  bool
	}{
		{name: "open event", event: &domain.Event{}, want: true},
		{name: "same campus", event: &domain.Event{Campus: "Tuxtla"}, want: true},
		{name: "other campus", event: &domain.Event{Campus: "Suchiapa"}},
		{
			name:  "career on allow list",
			event: &domain.Event{AllowedCareers: []string{"Ingeniería en Desarrollo de Software"}},
			want:  true,
		},
		{
			name:  "career not on allow list",
			event: &domain.Event{AllowedCareers: []string{"Licenciatura en Turismo"}},
		},
		{name: "meets minimum semester", event: &domain.Event{MinSemester: 5}, want: true},
		{name: "below minimum semester", event: &domain.Event{MinSemester: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanJoinEvent(tt.event, p))
		})
	}

	t.Run("nil profile", func(t *testing.T) {
		assert.False(t, CanJoinEvent(&domain.Event{}, nil))
	})
}

func TestCanJoinGroup(t *testing.T) {
	p := &domain.AcademicProfile{Career: "Ingeniería Industrial", Campus: "Tuxtla", Semester: 5}
	career := "Ingeniería Industrial"
	otherCareer := "Licenciatura en Gastronomía"
	sem3, sem8 := 3, 8

	tests := []struct {
		name  string
		group *domain.StudyGroup
		want  bool
	}{
		{name: "campus-wide group", group: &domain.StudyGroup{Campus: "Tuxtla"}, want: true},
		{name: "other campus", group: &domain.StudyGroup{Campus: "Suchiapa"}},
		{name: "matching career scope", group: &domain.StudyGroup{Campus: "Tuxtla", Career: &career}, want: true},
		{name: "different career scope", group: &domain.StudyGroup{Campus: "Tuxtla", Career: &otherCareer}},
		{name: "semester within two", group: &domain.StudyGroup{Campus: "Tuxtla", Semester: &sem3}, want: true},
		{name: "semester too far", group: &domain.StudyGroup{Campus: "Tuxtla", Semester: &sem8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanJoinGroup(tt.group, p))
		})
	}
}
