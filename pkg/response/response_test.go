package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"inventory-assistant/pkg/response"
)

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	handler(c)
	return w
}

func TestOK(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		response.OK(c, gin.H{"response": "hello"})
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.ErrorCode != 0 {
		t.Errorf("expected error_code 0, got %d", resp.ErrorCode)
	}
	if resp.Message != response.MessageSuccess {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestBadRequest(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		response.BadRequest(c, errors.New("owner_id is required"))
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Message != "owner_id is required" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestInternalErrorHidesDetails(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		response.InternalError(c)
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var resp response.Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Message != response.DefaultErrorMessage {
		t.Errorf("internal details leaked: %q", resp.Message)
	}
}
