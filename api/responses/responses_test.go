package responses

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/craftloop/craftloop-backend/pkg/errors"
)

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, 201, map[string]int{"id": 7})

	if rec.Code != 201 {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var body struct {
		Data map[string]int `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data["id"] != 7 {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestWriteErrorMapsCode(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock available").
		WithDetails(map[string]any{"requested": 5})
	WriteError(context.Background(), rec, nil, err)

	if rec.Code != 422 {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "INSUFFICIENT_STOCK" {
		t.Fatalf("unexpected code %q", body.Error.Code)
	}
	if body.Error.Details["requested"] != float64(5) {
		t.Fatalf("expected details to pass through, got %v", body.Error.Details)
	}
}

func TestWriteErrorMasksInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInternal, "connection string with secrets")
	WriteError(context.Background(), rec, nil, err)

	if rec.Code != 500 {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Message != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Error.Message)
	}
}

func TestWriteErrorUntypedError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), rec, nil, context.DeadlineExceeded)

	if rec.Code != 500 {
		t.Fatalf("expected 500 for untyped error, got %d", rec.Code)
	}
}
