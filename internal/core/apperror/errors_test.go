package apperror

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCategories(t *testing.T) {
	t.Parallel()

	if !errors.Is(Required("funcionario", "correo"), ErrValidation) {
		t.Fatalf("expected required error to match ErrValidation")
	}
	if !errors.Is(Duplicate("funcionario", "correo"), ErrDuplicateKey) {
		t.Fatalf("expected duplicate error to match ErrDuplicateKey")
	}
	if !errors.Is(NotFound("cargo"), ErrNotFound) {
		t.Fatalf("expected not found error to match ErrNotFound")
	}

	cause := errors.New("dial tcp: connection refused")
	unavailable := Unavailable(cause)
	if !errors.Is(unavailable, ErrStorageUnavailable) || !errors.Is(unavailable, cause) {
		t.Fatalf("expected unavailable error to wrap both sentinel and cause, got %v", unavailable)
	}
	if Unavailable(nil) != nil {
		t.Fatalf("expected nil for nil cause")
	}
}

func TestDuplicateField_ThroughWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("create: %w", Duplicate("funcionario", "numero_identificacion"))

	field, ok := DuplicateField(wrapped)
	if !ok || field != "numero_identificacion" {
		t.Fatalf("expected numero_identificacion, got %q (ok=%t)", field, ok)
	}

	if _, ok := DuplicateField(errors.New("other")); ok {
		t.Fatalf("expected no field for unrelated error")
	}
}

func TestRequireText(t *testing.T) {
	t.Parallel()

	got, err := RequireText("ciudad", "nombre_ciudad", "  Quito ")
	if err != nil || got != "Quito" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}

	if _, err := RequireText("ciudad", "nombre_ciudad", "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckLengths(t *testing.T) {
	t.Parallel()

	code := "FUNC-0001"
	long := strings.Repeat("ñ", 21)

	if err := CheckLengths("funcionario", TextLimit{Field: "codigo_unico", Value: &code, Max: 20}, TextLimit{Field: "telefono", Max: 20}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := CheckLengths("funcionario", TextLimit{Field: "codigo_unico", Value: &code, Max: 20}, TextLimit{Field: "apellidos", Value: &long, Max: 20})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := err.Error(); got != "funcionario: apellidos must be at most 20 characters" {
		t.Fatalf("unexpected message %q", got)
	}

	if err := MaxLength("funcionario", "apellidos", strings.Repeat("ñ", 20), 20); err != nil {
		t.Fatalf("expected 20 multibyte characters to fit, got %v", err)
	}
	if err := MaxLength("funcionario", "direccion", long, 0); err != nil {
		t.Fatalf("expected no limit for 0, got %v", err)
	}
}
