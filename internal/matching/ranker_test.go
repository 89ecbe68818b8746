package matching

import (
	"testing"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eligibleUser(id, career, campus string, semester int) *domain.User {
	return &domain.User{
		ID:                id,
		IsEmailVerified:   true,
		IsProfileComplete: true,
		IsActive:          true,
		Photos:            []domain.Photo{{ID: id + "-photo"}},
		AcademicProfile: &domain.AcademicProfile{
			UserID:   id,
			Career:   career,
			Campus:   campus,
			Semester: semester,
		},
	}
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	me := &domain.AcademicProfile{
		UserID:   "me",
		Career:   "Ingeniería en Desarrollo de Software",
		Campus:   "Tuxtla",
		Semester: 5,
	}
	pool := []*domain.User{
		eligibleUser("far", "Licenciatura en Turismo", "Suchiapa", 12),
		eligibleUser("best", "Ingeniería en Desarrollo de Software", "Tuxtla", 5),
		eligibleUser("mid", "Ingeniería en Sistemas Informáticos", "Tuxtla", 6),
	}

	ranked := Rank(me, pool, nil, 10)
	require.Len(t, ranked, 3)
	assert.Equal(t, "best", ranked[0].User.ID)
	assert.Equal(t, "mid", ranked[1].User.ID)
	assert.Equal(t, "far", ranked[2].User.ID)
	assert.Greater(t, ranked[0].Compatibility, ranked[1].Compatibility)
}

func TestRankSkipsExcludedSelfAndIneligible(t *testing.T) {
	me := &domain.AcademicProfile{UserID: "me", Career: "Ingeniería Industrial", Campus: "Tuxtla", Semester: 3}

	unverified := eligibleUser("unverified", "Ingeniería Industrial", "Tuxtla", 3)
	unverified.IsEmailVerified = false
	noPhotos := eligibleUser("nophotos", "Ingeniería Industrial", "Tuxtla", 3)
	noPhotos.Photos = nil

	pool := []*domain.User{
		eligibleUser("me", "Ingeniería Industrial", "Tuxtla", 3),
		eligibleUser("seen", "Ingeniería Industrial", "Tuxtla", 3),
		unverified,
		noPhotos,
		eligibleUser("keep", "Ingeniería Industrial", "Tuxtla", 4),
	}

	ranked := Rank(me, pool, map[string]bool{"seen": true}, 10)
	require.Len(t, ranked, 1)
	assert.Equal(t, "keep", ranked[0].User.ID)
}

func TestRankLimitAndStability(t *testing.T) {
	me := &domain.AcademicProfile{UserID: "me", Career: "Ingeniería en Geomática", Campus: "Tuxtla", Semester: 5}

	// Equal scores must keep pool order.
	pool := []*domain.User{
		eligibleUser("a", "Ingeniería en Geomática", "Tuxtla", 5),
		eligibleUser("b", "Ingeniería en Geomática", "Tuxtla", 5),
		eligibleUser("c", "Ingeniería en Geomática", "Tuxtla", 5),
	}

	ranked := Rank(me, pool, nil, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].User.ID)
	assert.Equal(t, "b", ranked[1].User.ID)
}

func TestRankEmptyPool(t *testing.T) {
	me := &domain.AcademicProfile{UserID: "me", Career: "x", Campus: "y", Semester: 1}
	assert.Empty(t, Rank(me, nil, nil, 10))
}
