package errors

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// MapStoreError maps document store errors to AppError instances:
//   - context deadline/cancel → Timeout/Canceled
//   - mongo.ErrNoDocuments → NotFound
//   - network errors and driver timeouts → Unavailable
//   - mongo.ErrClientDisconnected → Unavailable
//
// Unrecognized errors are returned unchanged.
func MapStoreError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &AppError{Code: ErrCodeTimeout, Message: "Request timed out. Please try again.", Cause: err}
	case errors.Is(err, context.Canceled):
		return &AppError{Code: ErrCodeCanceled, Message: "Request was canceled.", Cause: err}
	case errors.Is(err, mongo.ErrNoDocuments):
		return &AppError{Code: ErrCodeNotFound, Message: "Resource not found", Cause: err}
	case errors.Is(err, mongo.ErrClientDisconnected):
		return &AppError{Code: ErrCodeUnavailable, Message: "document store client is disconnected", Cause: err}
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return &AppError{Code: ErrCodeUnavailable, Message: "document store unavailable", Cause: err}
	}

	return err
}
