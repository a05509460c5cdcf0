package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"gorm.io/gorm"
)

func TestKindsMatchStatus(t *testing.T) {
	cases := []struct {
		err  *ApiErr
		is   func(error) bool
		code int
	}{
		{NewNotFoundError("missing"), IsNotFound, http.StatusNotFound},
		{NewBadRequestError("bad"), IsBadRequest, http.StatusBadRequest},
		{NewUnauthorizedError("who"), IsUnauthorized, http.StatusUnauthorized},
		{NewInternalError("boom"), IsInternal, http.StatusInternalServerError},
		{NewValidationError("email", "field required"), IsValidation, http.StatusUnprocessableEntity},
		{NewMalformedPayloadError("json", errors.New("eof")), IsValidation, http.StatusUnprocessableEntity},
		{NewFileTooLargeError(50), IsBadRequest, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if !tc.is(tc.err) {
			t.Fatalf("%q has the wrong kind", tc.err.Error())
		}
		wrapped := fmt.Errorf("handler: %w", tc.err)
		if StatusCode(wrapped) != tc.code {
			t.Fatalf("%q: expected %d, got %d", tc.err.Error(), tc.code, StatusCode(wrapped))
		}
	}

	if !errors.Is(NewRateLimitedError(), ErrRateLimited) {
		t.Fatal("rate limit error should match its sentinel")
	}
	if StatusCode(errors.New("plain")) != http.StatusInternalServerError {
		t.Fatal("unknown errors map to 500")
	}
}

func TestValidationErrorNamesField(t *testing.T) {
	err := NewValidationError("personal.name", "field required")
	if err.Field != "personal.name" || err.Error() != "validation error: personal.name: field required" {
		t.Fatalf("unexpected validation error %q field %q", err.Error(), err.Field)
	}
}

func TestDatabaseErrorMapsNotFound(t *testing.T) {
	err := NewDatabaseError("find", "project", gorm.ErrRecordNotFound)
	if !IsNotFound(err) || err.Error() != "project not found" {
		t.Fatalf("unexpected error %q", err.Error())
	}

	err = NewDatabaseError("update", "project", errors.New("connection reset"))
	if !IsInternal(err) || strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("driver detail must stay out of the message: %q", err.Error())
	}
	if !strings.Contains(err.GetFullError(), "connection reset") {
		t.Fatalf("full error should keep the cause: %q", err.GetFullError())
	}
}

func TestGetFullErrorFollowsNestedApiErr(t *testing.T) {
	inner := NewInvalidTokenError(errors.New("token is expired"))
	outer := NewInternalErrorWithCause("auth failed", inner)
	full := outer.GetFullError()
	if !strings.Contains(full, "invalid token") || !strings.Contains(full, "token is expired") {
		t.Fatalf("unexpected chain %q", full)
	}
}

func TestIsConstraintViolation(t *testing.T) {
	for _, err := range []error{
		gorm.ErrDuplicatedKey,
		errors.New(`ERROR: duplicate key value violates unique constraint "idx_admins_username"`),
		errors.New("UNIQUE constraint failed: admin_users.username"),
	} {
		if !IsConstraintViolation(err) {
			t.Fatalf("%v should be a constraint violation", err)
		}
	}
	if IsConstraintViolation(nil) || IsConstraintViolation(errors.New("timeout")) {
		t.Fatal("false positive")
	}
}

func TestUnsupportedMediaTypeListsAllowed(t *testing.T) {
	err := NewUnsupportedMediaTypeError("application/pdf", []string{"image/png", "image/jpeg"})
	if err.Field != "file" || !strings.Contains(err.Error(), "image/png, image/jpeg") {
		t.Fatalf("unexpected error %q", err.Error())
	}
}
