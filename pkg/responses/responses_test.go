package responses

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJSON(t *testing.T) {
	t.Run("writes valid JSON response", func(t *testing.T) {
		w := httptest.NewRecorder()

		JSON(w, http.StatusOK, map[string]string{"message": "success"})

		if w.Code != http.StatusOK {
			t.Errorf("JSON() status = %v, want %v", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Content-Type"); got != "application/json" {
			t.Errorf("JSON() Content-Type = %v, want application/json", got)
		}

		var response map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("JSON() produced invalid JSON: %v", err)
		}
		if response["message"] != "success" {
			t.Errorf("JSON() body = %v, want %v", response["message"], "success")
		}
	})

	t.Run("handles different status codes", func(t *testing.T) {
		for _, statusCode := range []int{
			http.StatusOK,
			http.StatusCreated,
			http.StatusBadRequest,
			http.StatusServiceUnavailable,
		} {
			w := httptest.NewRecorder()
			JSON(w, statusCode, map[string]string{"status": "test"})

			if w.Code != statusCode {
				t.Errorf("JSON() status = %v, want %v", w.Code, statusCode)
			}
		}
	})

	t.Run("handles nil data without panic", func(t *testing.T) {
		w := httptest.NewRecorder()

		defer func() {
			if r := recover(); r != nil {
				t.Errorf("JSON() panicked with nil data: %v", r)
			}
		}()

		JSON(w, http.StatusOK, nil)

		if w.Code != http.StatusOK {
			t.Errorf("JSON() status = %v, want %v", w.Code, http.StatusOK)
		}
	})

	t.Run("does not panic with unserializable data", func(t *testing.T) {
		w := httptest.NewRecorder()

		// Channels cannot be encoded as JSON.
		data := struct {
			Chan chan int `json:"chan"`
		}{
			Chan: make(chan int),
		}

		defer func() {
			if r := recover(); r != nil {
				t.Errorf("JSON() panicked with unserializable data: %v", r)
			}
		}()

		JSON(w, http.StatusOK, data)

		// The status line was already written before encoding failed.
		if w.Code != http.StatusOK {
			t.Errorf("JSON() status = %v, want %v", w.Code, http.StatusOK)
		}
	})
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	message := "something went wrong"

	Error(w, http.StatusBadRequest, message)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Error() status = %v, want %v", w.Code, http.StatusBadRequest)
	}

	var response struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Error() produced invalid JSON: %v", err)
	}
	if response.Message != message {
		t.Errorf("Error() message = %v, want %v", response.Message, message)
	}
}

func TestErrorWithDetails(t *testing.T) {
	t.Run("writes error with details", func(t *testing.T) {
		w := httptest.NewRecorder()
		details := map[string]string{
			"field": "listener",
			"error": "unknown name",
		}

		ErrorWithDetails(w, http.StatusUnprocessableEntity, "validation failed", details)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("ErrorWithDetails() status = %v, want %v", w.Code, http.StatusUnprocessableEntity)
		}

		var response struct {
			Message string                 `json:"message"`
			Details map[string]interface{} `json:"details"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("ErrorWithDetails() produced invalid JSON: %v", err)
		}
		if response.Message != "validation failed" {
			t.Errorf("ErrorWithDetails() message = %v, want validation failed", response.Message)
		}
		if response.Details["field"] != "listener" {
			t.Errorf("ErrorWithDetails() details = %v", response.Details)
		}
	})

	t.Run("omits nil details", func(t *testing.T) {
		w := httptest.NewRecorder()

		ErrorWithDetails(w, http.StatusInternalServerError, "error occurred", nil)

		var response map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("ErrorWithDetails() produced invalid JSON: %v", err)
		}
		if _, present := response["details"]; present {
			t.Error("ErrorWithDetails() kept a nil details field")
		}
	})
}

func BenchmarkJSON(b *testing.B) {
	data := map[string]string{"message": "success", "status": "ok"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		JSON(w, http.StatusOK, data)
	}
}
