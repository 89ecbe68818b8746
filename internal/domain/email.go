package domain

import (
	"regexp"
	"strings"
)

// Institutional addresses follow studentid@careercode.upchiapas.edu.mx,
// e.g. 223204@ids.upchiapas.edu.mx.
var universityEmailPattern = regexp.MustCompile(`^[^@\s]+@[a-z]+\.upchiapas\.edu\.mx$`)

// careerNames maps the career code embedded in the email domain to the full
// career name used on academic profiles.
var careerNames = map[string]string{
	"ids":  "Ingeniería en Desarrollo de Software",
	"isi":  "Ingeniería en Sistemas Informáticos",
	"iin":  "Ingeniería Industrial",
	"ial":  "Ingeniería en Alimentos",
	"iem":  "Ingeniería Electromecánica",
	"igeo": "Ingeniería en Geomática",
	"ienr": "Ingeniería en Energías Renovables",
	"lag":  "Licenciatura en Administración y Gestión",
	"lcp":  "Licenciatura en Contaduría Pública",
	"lgn":  "Licenciatura en Gastronomía",
	"ltu":  "Licenciatura en Turismo",
}

// UniversityEmail is a validated institutional email address.
type UniversityEmail struct {
	value string
}

// NewUniversityEmail validates the institutional format and returns the
// parsed value object. Fails with ErrInvalidEmail on anything else.
func NewUniversityEmail(email string) (UniversityEmail, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !universityEmailPattern.MatchString(email) {
		return UniversityEmail{}, ErrInvalidEmail
	}
	return UniversityEmail{value: email}, nil
}

func (e UniversityEmail) String() string {
	return e.value
}

// StudentID is the local part of the address.
func (e UniversityEmail) StudentID() string {
	at := strings.Index(e.value, "@")
	return e.value[:at]
}

// CareerCode is the first label of the domain, e.g. "ids".
func (e UniversityEmail) CareerCode() string {
	at := strings.Index(e.value, "@")
	domain := e.value[at+1:]
	return strings.SplitN(domain, ".", 2)[0]
}

// CareerName resolves the career code to its full name, falling back to the
// uppercased code for careers missing from the map.
func (e UniversityEmail) CareerName() string {
	code := e.CareerCode()
	if name, ok := careerNames[code]; ok {
		return name
	}
	return "Carrera " + strings.ToUpper(code)
}
