package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"student not found", apperrors.ErrStudentNotFound, http.StatusNotFound},
		{"wrapped program not found", fmt.Errorf("lookup: %w", apperrors.ErrProgramNotFound), http.StatusNotFound},
		{"invalid sort", apperrors.ErrInvalidSortOrder, http.StatusBadRequest},
		{"invalid program filter", apperrors.ErrInvalidProgramFilter, http.StatusBadRequest},
		{"validation", apperrors.ValidationErrors{{Field: "id", Kind: apperrors.ErrMissingField}}, http.StatusBadRequest},
		{"duplicate", apperrors.ErrStudentIDAlreadyExists, http.StatusConflict},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got, _, _ := ErrorStatus(tc.err); got != tc.want {
			t.Errorf("%s: status %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(RequestIDHeader)
	if id == "" || w.Body.String() != id {
		t.Fatalf("expected generated id echoed, header %q body %q", id, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("incoming id not reused: %q", got)
	}
}

func TestValidationMessages(t *testing.T) {
	msgs := ValidationMessages(apperrors.ValidationErrors{
		{Field: "id", Kind: apperrors.ErrInvalidType},
		{Field: "promedio", Kind: apperrors.ErrInvalidType},
		{Field: "programa", Kind: apperrors.ErrDanglingReference},
		{Field: "name", Kind: apperrors.ErrMissingField},
	})
	want := map[string]string{
		"id":       "Debe ser un número entero",
		"promedio": "Debe ser un número",
		"programa": "El programa seleccionado no existe",
		"name":     "Este campo es obligatorio",
	}
	for field, msg := range want {
		if msgs[field] != msg {
			t.Errorf("%s: %q, want %q", field, msgs[field], msg)
		}
	}
}
