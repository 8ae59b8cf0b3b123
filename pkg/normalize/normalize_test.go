package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/crm-pro/pkg/normalize"
)

func TestText_QuitaTildesYMayusculas(t *testing.T) {
	cases := map[string]string{
		"Suramérica SAS":        "suramerica sas",
		"  Café Quindío  ":      "cafe quindio",
		"PEÑA & Asociados":      "pena & asociados",
		"ya-normalizado":        "ya-normalizado",
		"":                      "",
		"Ñoño Ltda":             "nono ltda",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalize.Text(in), "entrada: %q", in)
	}
}

func TestText_EsIdempotente(t *testing.T) {
	once := normalize.Text("Distribuciones Bogotá D.C.")
	assert.Equal(t, once, normalize.Text(once))
}
