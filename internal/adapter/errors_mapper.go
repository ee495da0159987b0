package adapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-fin-track/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return NewAPIError(resp.StatusCode(), errorMessage(resp.Body()))
}

func statusKind(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return ErrUnexpectedStatus
	}
}

// errorMessage extracts the "message" field of an error body. Bodies that
// are not JSON objects yield an empty message.
func errorMessage(body []byte) string {
	var payload models.ErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
