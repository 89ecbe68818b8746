package matching

import (
	"testing"

	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func profile(career, campus string, semester int, interests ...string) *domain.AcademicProfile {
	return &domain.AcademicProfile{
		Career:            career,
		Campus:            campus,
		Semester:          semester,
		AcademicInterests: interests,
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		a, b *domain.AcademicProfile
		want int
	}{
		{
			name: "identical profiles clamp to 100",
			a:    profile("Ingeniería en Desarrollo de Software", "Tuxtla", 5, "ia", "web"),
			b:    profile("Ingeniería en Desarrollo de Software", "Tuxtla", 5, "ia", "web"),
			// 40 + 30 + 20 + 10 = 100
			want: 100,
		},
		{
			name: "related careers one semester apart",
			a:    profile("Ingeniería en Desarrollo de Software", "Tuxtla", 5),
			b:    profile("Ingeniería en Sistemas Informáticos", "Tuxtla", 6),
			// 20 + 30 + 0.2*90 = 68
			want: 68,
		},
		{
			name: "unrelated careers different campus far semesters",
			a:    profile("Licenciatura en Gastronomía", "Tuxtla", 1),
			b:    profile("Ingeniería en Geomática", "Suchiapa", 11),
			want: 0,
		},
		{
			name: "semester decay floors at zero",
			a:    profile("Ingeniería Industrial", "Tuxtla", 1),
			b:    profile("Ingeniería Industrial", "Tuxtla", 14),
			// 40 + 30 + 0
			want: 70,
		},
		{
			name: "shared interests capped at 25",
			a:    profile("Ingeniería en Alimentos", "Suchiapa", 3, "a", "b", "c", "d", "e", "f"),
			b:    profile("Licenciatura en Turismo", "Tuxtla", 3, "a", "b", "c", "d", "e", "f"),
			// 0 + 0 + 20 + min(30, 25)
			want: 45,
		},
		{
			name: "three semesters apart",
			a:    profile("Ingeniería Electromecánica", "Tuxtla", 4),
			b:    profile("Ingeniería Electromecánica", "Tuxtla", 7),
			// 40 + 30 + 0.2*70 = 84
			want: 84,
		},
		{
			name: "related careers are not symmetric with unrelated ones",
			a:    profile("Ingeniería Electromecánica", "Tuxtla", 5),
			b:    profile("Ingeniería en Energías Renovables", "Tuxtla", 5),
			// 20 + 30 + 20
			want: 70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.a, tt.b))
		})
	}
}

func TestScoreIsSymmetricForMutualRelations(t *testing.T) {
	a := profile("Ingeniería en Desarrollo de Software", "Tuxtla", 3, "ia")
	b := profile("Ingeniería en Sistemas Informáticos", "Suchiapa", 7, "ia", "redes")

	assert.Equal(t, Score(a, b), Score(b, a))
}
