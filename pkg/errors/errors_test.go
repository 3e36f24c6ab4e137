package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeCardNotFound, "card %q not found", "Sword")

	if err.Code != ErrCodeCardNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeCardNotFound)
	}

	if err.Message != `card "Sword" not found` {
		t.Errorf("Message = %v, want %v", err.Message, `card "Sword" not found`)
	}

	expected := `CARD_NOT_FOUND: card "Sword" not found`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrCodeRasterization, cause, "rasterize card")

	if err.Code != ErrCodeRasterization {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRasterization)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeEmptyInput, "test"),
			code:     ErrCodeEmptyInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeEmptyInput, "test"),
			code:     ErrCodeCardNotFound,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeRasterization, New(ErrCodeTimeout, "inner"), "outer"),
			code:     ErrCodeRasterization,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidTheme, "test"),
			expected: ErrCodeInvalidTheme,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRasterError(t *testing.T) {
	t.Run("full message", func(t *testing.T) {
		err := &RasterError{CardID: "Potion", Diagnostic: "parse error", Err: errors.New("exit status 1")}
		msg := err.Error()
		for _, want := range []string{"Potion", "exit status 1", "parse error"} {
			if !strings.Contains(msg, want) {
				t.Errorf("Error() = %q, missing %q", msg, want)
			}
		}
	})

	t.Run("minimal message", func(t *testing.T) {
		err := &RasterError{}
		if err.Error() != "rasterization failed" {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("code method", func(t *testing.T) {
		err := &RasterError{}
		if err.Code() != ErrCodeRasterization {
			t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeRasterization)
		}
	})

	t.Run("wrapped keeps code", func(t *testing.T) {
		err := Wrap(ErrCodeRasterization, &RasterError{CardID: "x"}, "print run")
		var re *RasterError
		if !errors.As(err, &re) || re.CardID != "x" {
			t.Errorf("errors.As did not find RasterError in %v", err)
		}
	})
}
