package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/agentstation/providerhub/pkg/errors"
	"github.com/agentstation/providerhub/pkg/logging"
)

// maxErrorBody caps how much of an error body ends up in messages.
const maxErrorBody = 512

// DecodeResponse closes resp.Body and decodes it into target. Any non-2xx
// status becomes an APIError.
func DecodeResponse(resp *http.Response, provider string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("provider_id", provider).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapNetwork(provider, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := errors.NewAPIError(provider, resp.StatusCode, ErrorMessage(resp.StatusCode, body))
		if resp.Request != nil && resp.Request.URL != nil {
			apiErr.Endpoint = redact(resp.Request.URL.String())
		}
		return apiErr
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}
	return nil
}

// StatusText is the reason phrase of a status code, falling back to the number.
func StatusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return strconv.Itoa(code)
}

// ErrorMessage builds a short message from a failed response.
func ErrorMessage(code int, body []byte) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return StatusText(code)
	}
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	return msg
}
