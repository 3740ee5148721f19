package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorHandlerRecoversPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		panic("collection dropped")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error shape: %v", err)
	}
	if body.Error != "Internal error" {
		t.Errorf("error = %q, want %q", body.Error, "Internal error")
	}
	if body.Detail == "" {
		t.Error("a recovered panic still carries a client-safe detail")
	}
}

func TestJSONErrorShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/appointments", nil)

	JSONError(c, http.StatusBadRequest, "Invalid request", "applicant name is required")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !c.IsAborted() {
		t.Error("JSONError must abort the handler chain")
	}
	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error shape: %v", err)
	}
	if body.Error != "Invalid request" || body.Detail != "applicant name is required" {
		t.Errorf("body = %+v, want summary and detail echoed", body)
	}
}
