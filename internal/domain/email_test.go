package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUniversityEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid software engineering address", input: "223204@ids.upchiapas.edu.mx"},
		{name: "uppercase is normalized", input: "223204@IDS.UPCHIAPAS.EDU.MX"},
		{name: "surrounding whitespace trimmed", input: "  223204@ids.upchiapas.edu.mx  "},
		{name: "gmail rejected", input: "student@gmail.com", wantErr: true},
		{name: "wrong institution rejected", input: "223204@ids.unach.edu.mx", wantErr: true},
		{name: "missing career code rejected", input: "223204@upchiapas.edu.mx", wantErr: true},
		{name: "empty string rejected", input: "", wantErr: true},
		{name: "missing local part rejected", input: "@ids.upchiapas.edu.mx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := NewUniversityEmail(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "223204@ids.upchiapas.edu.mx", email.String())
		})
	}
}

func TestUniversityEmailParts(t *testing.T) {
	email, err := NewUniversityEmail("231157@lag.upchiapas.edu.mx")
	require.NoError(t, err)

	assert.Equal(t, "231157", email.StudentID())
	assert.Equal(t, "lag", email.CareerCode())
	assert.Equal(t, "Licenciatura en Administración y Gestión", email.CareerName())
}

func TestUniversityEmailUnknownCareerCode(t *testing.T) {
	email, err := NewUniversityEmail("999999@xyz.upchiapas.edu.mx")
	require.NoError(t, err)

	// Unknown codes still produce a usable career name.
	assert.Equal(t, "Carrera XYZ", email.CareerName())
}
