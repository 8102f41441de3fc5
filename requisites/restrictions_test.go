package requisites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(typ, op, value string) RestrictionRule {
	return RestrictionRule{Type: typ, Operator: op, Value: value, Raw: "(" + typ + " " + op + " " + value + ")"}
}

func rules(rs ...RestrictionRule) Group[RestrictionRule] {
	return Group[RestrictionRule]{Type: And, Leaves: rs}
}

func TestParseRestrictions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Group[RestrictionRule]
	}{
		{
			name: "single rule",
			text: "(Programa = Lic Ing Cs Datos)",
			want: rules(rule("Programa", "=", "Lic Ing Cs Datos")),
		},
		{
			name: "no spaces around operator",
			text: "(Nivel=Pregrado)",
			want: rules(rule("Nivel", "=", "Pregrado")),
		},
		{
			name: "value containing a connective word",
			text: "(Programa = Letras y Filosofía) o (Nivel = Pregrado)",
			want: Group[RestrictionRule]{Type: Or, Groups: []Group[RestrictionRule]{
				rules(rule("Programa", "=", "Letras y Filosofía")),
				rules(rule("Nivel", "=", "Pregrado")),
			}},
		},
		{
			name: "comparison operators",
			text: "(Creditos >= 100) y (Nivel<>Magister)",
			want: Group[RestrictionRule]{Type: And, Groups: []Group[RestrictionRule]{
				rules(rule("Creditos", ">=", "100")),
				rules(rule("Nivel", "<>", "Magister")),
			}},
		},
		{
			name: "unparenthesized rules",
			text: "Programa = Bachillerato o Escuela = Ingeniería",
			want: Group[RestrictionRule]{Type: Or, Groups: []Group[RestrictionRule]{
				rules(rule("Programa", "=", "Bachillerato")),
				rules(rule("Escuela", "=", "Ingeniería")),
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := Restrictions.Parse(tt.text)
			require.True(t, parsed.Present)
			assert.Equal(t, tt.want, *parsed.Structure)
		})
	}
}

func TestParseRestrictionsAbsent(t *testing.T) {
	assert.False(t, Restrictions.Parse("No tiene").Present)
	assert.False(t, Restrictions.Parse(" ").Present)
}

func TestExtractRestrictions(t *testing.T) {
	got := ExtractRestrictions("(Programa = Lic Ing Cs Datos)(Nivel = Pregrado) garbage")
	assert.Equal(t, []RestrictionRule{
		rule("Programa", "=", "Lic Ing Cs Datos"),
		rule("Nivel", "=", "Pregrado"),
	}, got)

	assert.Nil(t, ExtractRestrictions("sin operador"))
	assert.Nil(t, ExtractRestrictions("(= vacio)"))
}
