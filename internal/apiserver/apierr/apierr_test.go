package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"users-admin/internal/apiserver/validate"
)

type body struct {
	Errors []Item `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) body {
	t.Helper()
	var b body
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return b
}

func TestWrite_TypedError(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, NotFound())

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	b := decode(t, w)
	if len(b.Errors) != 1 || b.Errors[0].Message != "Not Found" {
		t.Errorf("unexpected body: %+v", b)
	}
}

// 内部错误绝不能把细节泄漏进响应体
func TestWrite_InternalErrorIsGeneric(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, errors.New("mongo: connection reset by peer"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	b := decode(t, w)
	if len(b.Errors) != 1 || b.Errors[0].Message != "Something went wrong" {
		t.Errorf("unexpected body: %+v", b)
	}
}

// 包装过的业务错误仍按其状态码渲染
func TestWrite_WrappedTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	Write(w, wrapped{inner: BadRequest("Email already in use")})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

type wrapped struct{ inner error }

func (w wrapped) Error() string { return w.inner.Error() }
func (w wrapped) Unwrap() error { return w.inner }

func TestFromValidation_KeepsAllItems(t *testing.T) {
	errs := []validate.Error{
		{Message: "Invalid value", Field: "email"},
		{Message: "a valid email is required", Field: "email"},
	}
	apiErr := FromValidation(errs)
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", apiErr.Status)
	}
	if len(apiErr.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(apiErr.Items))
	}
}
