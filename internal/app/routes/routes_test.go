package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studentrecords/internal/app/controllers"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/app/routes"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/app/views"
	"github.com/yigit/studentrecords/internal/middleware"
	"github.com/yigit/studentrecords/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, name string) *gin.Engine {
	t.Helper()
	d, repos := testutil.OpenSeededDB(t, name)
	svc := services.NewServices(repos)

	tmpl, err := views.Load()
	if err != nil {
		t.Fatalf("load templates: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())
	router.SetHTMLTemplate(tmpl)
	routes.SetupRouter(router,
		controllers.NewStudentController(svc.StudentService, svc.ProgramService),
		controllers.NewProgramController(svc.ProgramService),
		controllers.NewHealthController(d),
	)
	return router
}

func get(router *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func postForm(router *gin.Engine, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func studentValues(id, name, email, average, program string) url.Values {
	return url.Values{
		"id":       {id},
		"name":     {name},
		"correo":   {email},
		"promedio": {average},
		"programa": {program},
	}
}

func mustContain(t *testing.T, body string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(body, p) {
			t.Fatalf("body missing %q:\n%s", p, body)
		}
	}
}

func TestIndexRedirects(t *testing.T) {
	router := newTestRouter(t, "routesindex")

	w := get(router, "/")
	if w.Code != http.StatusFound {
		t.Fatalf("status %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/estudiantes" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestListStudents(t *testing.T) {
	router := newTestRouter(t, "routeslist")

	w := get(router, "/estudiantes")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	if n := strings.Count(body, `href="/estudiante/`); n != 8 {
		t.Fatalf("expected 8 student rows, got %d", n)
	}
	mustContain(t, body, "Andrés Botero", "Roberto Romero", "Mecatrónica", `<strong id="promedio">38.50</strong>`)
}

func TestListStudentsByProgram(t *testing.T) {
	router := newTestRouter(t, "routeslistprogram")

	w := get(router, "/estudiantes?programa=111")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	if n := strings.Count(body, `href="/estudiante/`); n != 2 {
		t.Fatalf("expected 2 student rows, got %d", n)
	}
	mustContain(t, body, "Andrés Botero", "Jose Cifuentes", `<strong id="promedio">35.50</strong>`)
	if strings.Contains(body, "Mario Martinez") {
		t.Fatal("student from another program listed")
	}
}

func TestListStudentsEmptyFilterIsAbsent(t *testing.T) {
	router := newTestRouter(t, "routeslistblank")

	w := get(router, "/estudiantes?programa=")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if n := strings.Count(w.Body.String(), `href="/estudiante/`); n != 8 {
		t.Fatalf("expected 8 student rows, got %d", n)
	}
}

func TestListStudentsNoMatchesShowsNaN(t *testing.T) {
	router := newTestRouter(t, "routeslistnan")

	w := get(router, "/estudiantes?programa=999")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, `href="/estudiante/`) {
		t.Fatal("expected no student rows")
	}
	mustContain(t, body, `<strong id="promedio">NaN</strong>`)
}

func TestListStudentsOrdered(t *testing.T) {
	router := newTestRouter(t, "routeslistorder")

	w := get(router, "/estudiantes?order="+url.QueryEscape("promedio DESC"))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	mario := strings.Index(body, "Mario Martinez")
	andres := strings.Index(body, "Andrés Botero")
	if mario < 0 || andres < 0 || mario > andres {
		t.Fatalf("expected Mario (45) before Andrés (34)")
	}
}

func TestListStudentsBadInput(t *testing.T) {
	router := newTestRouter(t, "routeslistbad")

	for _, target := range []string{
		"/estudiantes?programa=abc",
		"/estudiantes?order=" + url.QueryEscape("promedio; DROP TABLE estudiante"),
		"/estudiantes?order=" + url.QueryEscape("(SELECT 1)"),
	} {
		if w := get(router, target); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", target, w.Code)
		}
	}

	if w := get(router, "/estudiantes"); w.Code != http.StatusOK {
		t.Fatalf("listing broken after rejected input: %d", w.Code)
	}
}

func TestCreateThenEditForm(t *testing.T) {
	router := newTestRouter(t, "routescreate")

	if w := get(router, "/crear_estudiante"); w.Code != http.StatusOK {
		t.Fatalf("GET form status %d", w.Code)
	}

	w := postForm(router, "/crear_estudiante", studentValues("9999", "Ana Gómez", "ana@gmail.com", "40.5", "222"))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/estudiantes" {
		t.Fatalf("POST status %d location %q", w.Code, w.Header().Get("Location"))
	}

	w = get(router, "/estudiante/9999")
	if w.Code != http.StatusOK {
		t.Fatalf("GET edit status %d", w.Code)
	}
	mustContain(t, w.Body.String(),
		`name="id" value="9999"`,
		`value="Ana Gómez"`,
		`value="ana@gmail.com"`,
		`value="40.5"`,
		`<option value="222" selected>`,
		`action="/estudiante/9999"`,
	)
}

func TestCreateValidationErrors(t *testing.T) {
	router := newTestRouter(t, "routescreateinvalid")

	w := postForm(router, "/crear_estudiante", studentValues("abc", "", "x@x.com", "alto", "999"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	mustContain(t, w.Body.String(), "Debe ser un número entero", "Este campo es obligatorio", "Debe ser un número", `value="abc"`)

	w = postForm(router, "/crear_estudiante", studentValues("4242", "Nadie", "n@x.com", "30", "999"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	mustContain(t, w.Body.String(), "El programa seleccionado no existe")

	if w := get(router, "/estudiante/4242"); w.Code != http.StatusNotFound {
		t.Fatalf("invalid submission was stored: status %d", w.Code)
	}
}

func TestCreateDuplicate(t *testing.T) {
	router := newTestRouter(t, "routescreatedup")

	w := postForm(router, "/crear_estudiante", studentValues("1234", "Otro", "otro@x.com", "30", "111"))
	if w.Code != http.StatusConflict {
		t.Fatalf("status %d, want 409", w.Code)
	}
	mustContain(t, w.Body.String(), "Ya existe un estudiante con ese ID")
}

func TestEditStudent(t *testing.T) {
	router := newTestRouter(t, "routesedit")

	w := postForm(router, "/estudiante/1234", studentValues("1234", "Andrés Botero", "andres@gmail.com", "50", "111"))
	if w.Code != http.StatusFound {
		t.Fatalf("POST status %d", w.Code)
	}

	w = get(router, "/estudiantes?programa=111")
	body := w.Body.String()
	mustContain(t, body, "<td>50</td>", `<strong id="promedio">43.50</strong>`)
}

func TestEditChangesID(t *testing.T) {
	router := newTestRouter(t, "routeseditid")

	w := postForm(router, "/estudiante/5678", studentValues("8765", "Jose Cifuentes", "jose@gmail.com", "37", "111"))
	if w.Code != http.StatusFound {
		t.Fatalf("POST status %d", w.Code)
	}
	if w := get(router, "/estudiante/5678"); w.Code != http.StatusNotFound {
		t.Fatalf("old id still present: %d", w.Code)
	}
	if w := get(router, "/estudiante/8765"); w.Code != http.StatusOK {
		t.Fatalf("new id missing: %d", w.Code)
	}

	w = postForm(router, "/estudiante/8765", studentValues("1234", "Jose Cifuentes", "jose@gmail.com", "37", "111"))
	if w.Code != http.StatusConflict {
		t.Fatalf("collision status %d, want 409", w.Code)
	}
}

func TestEditMissingStudent(t *testing.T) {
	router := newTestRouter(t, "routeseditmissing")

	if w := get(router, "/estudiante/1"); w.Code != http.StatusNotFound {
		t.Fatalf("GET status %d, want 404", w.Code)
	}
	w := postForm(router, "/estudiante/1", studentValues("1", "x", "x@x.com", "1", "111"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("POST status %d, want 404", w.Code)
	}
	if w := get(router, "/estudiante/uno"); w.Code != http.StatusBadRequest {
		t.Fatalf("non-integer id status %d, want 400", w.Code)
	}
}

func TestProgramsAndQueries(t *testing.T) {
	router := newTestRouter(t, "routesprograms")

	w := get(router, "/programas")
	if w.Code != http.StatusOK {
		t.Fatalf("programas status %d", w.Code)
	}
	mustContain(t, w.Body.String(), "Multimedia", "Mecatrónica", "Civil", "Industrial", "Calle 100", "Cajicá")

	w = get(router, "/consultas")
	if w.Code != http.StatusOK {
		t.Fatalf("consultas status %d", w.Code)
	}
	mustContain(t, w.Body.String(), `href="/estudiantes?programa=111"`, `name="order"`)
}

func TestHealthAndNotFound(t *testing.T) {
	router := newTestRouter(t, "routeshealth")

	w := get(router, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status %d", w.Code)
	}
	var resp dto.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Store != "sqlite3" {
		t.Fatalf("unexpected health response %+v", resp)
	}

	w = get(router, "/nada")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown route status %d", w.Code)
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatal("missing request id header")
	}
}
