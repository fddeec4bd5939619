package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/fanclubhq/fanclub/pkg/errors"
)

// providerErrorResponse is the structured error body shape returned by the
// external providers this service calls.
type providerErrorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError reads the body of a non-2xx response from an external
// provider and translates it into an AppError. Structured error bodies keep
// their code and message; anything else becomes a generic error carrying the
// status and raw body. The response body is consumed and closed.
func ParseResponseError(resp *http.Response, provider string) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", provider, resp.StatusCode, err)
	}

	var parsed providerErrorResponse
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
		return mapProviderError(resp.StatusCode, parsed.Error.Code, parsed.Error.Message, provider)
	}

	return fmt.Errorf("%s returned status %d: %s", provider, resp.StatusCode, string(body))
}

func mapProviderError(status int, code, message, provider string) error {
	qualified := fmt.Sprintf("%s: %s", provider, message)

	switch {
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualified)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualified)
	case status == http.StatusRequestEntityTooLarge:
		return apperrors.PayloadTooLarge(qualified)
	case status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(qualified)
	case status >= 500:
		return apperrors.CheckoutFailed(qualified)
	default:
		return &apperrors.AppError{
			Code:    code,
			Message: qualified,
			Status:  status,
		}
	}
}
