package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/roomlab/roomboard/pkg/utils/logging"
)

// Handle logs the error with a message and returns it unchanged. Keeping the
// log here means every failure path gets the goerr values and stack exactly
// once.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	return err
}

// HandleHTTP logs the error and writes an HTTP error response.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	http.Error(w, err.Error(), statusCode)
}
