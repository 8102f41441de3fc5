package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osuc/buscaramos/db"
)

const requisitesPage = `<html><body>
<table class="tablaRequisitos">
<tr><td>Prerrequisitos</td><td>(IIC1103 o IIC1222)
  y MAT1203(c)</td></tr>
<tr><td>Relación entre prerrequisitos y restricciones</td><td>o</td></tr>
<tr><td>Restricciones</td><td>(Programa = Ingeniería &amp; Ciencias)</td></tr>
<tr><td>Equivalencias</td><td>No tiene</td></tr>
</table>
</body></html>`

func resultRow(class, sigle, name, credits string) string {
	cells := make([]string, 14)
	cells[sigleColumn] = sigle
	cells[nameColumn] = name
	cells[creditsColumn] = credits
	cells[10] = `<table><tr><td>L-W</td><td>1</td></tr></table>`

	var b strings.Builder
	fmt.Fprintf(&b, `<tr class="%v">`, class)
	for _, cell := range cells {
		fmt.Fprintf(&b, "<td>%v</td>", cell)
	}
	b.WriteString("</tr>")
	return b.String()
}

func searchPage(rows ...string) string {
	return `<html><body>
<select id="cxml_semestre">
<option value="2024-2">2024-2</option>
<option value="2024-1">2024-1</option>
<option value="">Seleccione</option>
</select>
<table>` + strings.Join(rows, "\n") + `</table></body></html>`
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("sigla") {
		case "IIC2233":
			fmt.Fprint(w, requisitesPage)
		default:
			fmt.Fprint(w, "<html><body><p>Curso no encontrado</p></body></html>")
		}
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cxml_sigla") {
		case "MAT":
			fmt.Fprint(w, searchPage(
				`<tr><td colspan="17">Matemática</td></tr>`,
				resultRow("resultadosRowPar", "MAT1610", "Cálculo I", "10"),
				resultRow("resultadosRowImpar", "MAT1610", "Cálculo I", "10"),
				resultRow("resultadosRowPar", "MAT1620", "Cálculo II", "10"),
			))
		case "FIS":
			fmt.Fprint(w, searchPage(
				`<tr><td colspan="17">Física</td></tr>`,
				resultRow("resultadosRowPar", "FIS1513", "Estática y Dinámica", "10"),
				resultRow("resultadosRowImpar", "FIS1514", "Sin Créditos", "-"),
			))
		case "ERR":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			fmt.Fprint(w, searchPage())
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &Client{
		HTTP:      server.Client(),
		BaseURL:   server.URL + "/catalog",
		SearchURL: server.URL + "/search",
	}
}

func TestScrapeRequisites(t *testing.T) {
	client := newTestClient(t)

	got, err := client.ScrapeRequisites(context.Background(), "IIC2233")
	require.NoError(t, err)
	assert.Equal(t, db.CourseRequisites{
		Sigle:         "IIC2233",
		Prerequisites: "(IIC1103 o IIC1222) y MAT1203(c)",
		Connector:     "o",
		Restrictions:  "(Programa = Ingeniería & Ciencias)",
		Equivalences:  "",
	}, got)
}

func TestScrapeRequisitesUnexpectedPage(t *testing.T) {
	client := newTestClient(t)

	_, err := client.ScrapeRequisites(context.Background(), "XXX0000")
	assert.ErrorIs(t, err, ErrUnexpectedPage)
}

func TestScrapeAllRequisitesSkipsFailures(t *testing.T) {
	client := newTestClient(t)

	got := client.ScrapeAllRequisites(context.Background(), []string{"IIC2233", "XXX0000"})
	require.Len(t, got, 1)
	assert.Equal(t, "IIC2233", got[0].Sigle)
}

func TestScrapeCourses(t *testing.T) {
	client := newTestClient(t)

	got, err := client.ScrapeCourses(context.Background(), "2024-2", "MAT")
	require.NoError(t, err)
	assert.Equal(t, []db.Course{
		{Sigle: "MAT1610", Name: "Cálculo I", Credits: 10, School: "Matemática", LastSemester: "2024-2"},
		{Sigle: "MAT1620", Name: "Cálculo II", Credits: 10, School: "Matemática", LastSemester: "2024-2"},
	}, got)
}

func TestScrapeCoursesBadStatus(t *testing.T) {
	client := newTestClient(t)

	_, err := client.ScrapeCourses(context.Background(), "2024-2", "ERR")
	assert.Error(t, err)
}

func TestScrapeAllCourses(t *testing.T) {
	client := newTestClient(t)

	got := client.ScrapeAllCourses(context.Background(), "2024-2", []string{"FIS", "ERR", "MAT"})

	var sigles []string
	for _, course := range got {
		sigles = append(sigles, course.Sigle)
	}
	assert.Equal(t, []string{"FIS1513", "FIS1514", "MAT1610", "MAT1620"}, sigles)
	assert.Equal(t, 0, got[1].Credits)
	assert.Equal(t, "Física", got[1].School)
}

func TestScrapeSemesters(t *testing.T) {
	client := newTestClient(t)

	got, err := client.ScrapeSemesters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []db.Semester{
		{Code: "2024-2", Name: "2024-2"},
		{Code: "2024-1", Name: "2024-1"},
	}, got)
}
