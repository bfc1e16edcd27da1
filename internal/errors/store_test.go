package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestMapStoreError_NilError(t *testing.T) {
	if err := MapStoreError(nil); err != nil {
		t.Errorf("MapStoreError(nil) = %v, want nil", err)
	}
}

func TestMapStoreError_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"deadline", fmt.Errorf("find: %w", context.DeadlineExceeded), ErrCodeTimeout},
		{"canceled", context.Canceled, ErrCodeCanceled},
		{"no documents", fmt.Errorf("find tenant: %w", mongo.ErrNoDocuments), ErrCodeNotFound},
		{"disconnected", mongo.ErrClientDisconnected, ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapStoreError(tt.err)
			if GetCode(got) != tt.want {
				t.Fatalf("MapStoreError() code = %q, want %q", GetCode(got), tt.want)
			}
			if !errors.Is(got, tt.err) && !errors.Is(got, errors.Unwrap(tt.err)) {
				t.Fatalf("MapStoreError() dropped cause")
			}
		})
	}
}

func TestMapStoreError_PassThrough(t *testing.T) {
	orig := errors.New("unexpected")
	if got := MapStoreError(orig); !errors.Is(got, orig) || GetCode(got) != "" {
		t.Fatalf("MapStoreError() = %v, want original error", got)
	}

	app := Validationf("bad")
	if got := MapStoreError(app); got != error(app) {
		t.Fatalf("MapStoreError() rewrapped an AppError")
	}
}
