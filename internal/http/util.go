package httpx

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/target/iris/internal/errors"
)

// parseIntQuery returns the integer value of a query param, or def when it is absent.
// Present but non-integer values are a validation error naming the parameter.
func parseIntQuery(r *http.Request, key string, def int) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperrors.Validationf("%s must be an integer", key).WithField(key)
	}
	return i, nil
}
