package mediagen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Credential failures map to ErrUnauthorized no matter what the response
// body contains, so a misleading upstream error payload can never hide a
// bad API key from the user.
func TestProperty_StatusMapping_CredentialAlwaysWins(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		status := rapid.SampledFrom([]int{
			http.StatusUnauthorized,
			http.StatusForbidden,
		}).Draw(rt, "status")
		body := rapid.SliceOfN(rapid.Byte(), 0, 256).Draw(rt, "body")

		err := mapStatusError(status, body)
		require.NotNil(rt, err)
		assert.Equal(rt, ErrUnauthorized, err.Code)
		assert.Equal(rt, status, err.HTTPStatus)
	})
}

// Every non-2xx status lands in exactly one error bucket and the upstream
// status is always preserved on the structured error.
func TestProperty_StatusMapping_Classification(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		status := rapid.IntRange(300, 599).Draw(rt, "status")
		detail := rapid.StringMatching(`[a-zA-Z0-9 ]{0,60}`).Draw(rt, "detail")

		body, jsonErr := json.Marshal(apiErrorBody{Detail: detail})
		require.NoError(rt, jsonErr)

		err := mapStatusError(status, body)
		require.NotNil(rt, err)
		assert.Equal(rt, status, err.HTTPStatus)

		switch {
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			assert.Equal(rt, ErrUnauthorized, err.Code)
		case status == http.StatusBadRequest:
			assert.Equal(rt, ErrInvalidPrompt, err.Code)
		case status >= http.StatusInternalServerError:
			assert.Equal(rt, ErrContentRejected, err.Code)
		default:
			assert.Equal(rt, ErrUpstream, err.Code)
		}
		if detail != "" {
			assert.Contains(rt, err.Error(), detail)
		}
	})
}

// Prompt enhancement never loses the user's prompt: any upstream failure
// mode returns the original text unchanged.
func TestProperty_EnhancePrompt_FallbackNeverLosesPrompt(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		prompt := rapid.StringMatching(`[a-zA-Z0-9,.! ]{1,80}`).Draw(rt, "prompt")
		failStatus := rapid.SampledFrom([]int{400, 401, 403, 429, 500, 502, 503}).Draw(rt, "failStatus")
		garbage := rapid.SampledFrom([]string{
			``, `{`, `not json at all`, `{"option_1": 42}`, `[]`,
		}).Draw(rt, "garbage")
		failHard := rapid.Bool().Draw(rt, "failHard")

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if failHard {
				w.WriteHeader(failStatus)
			}
			w.Write([]byte(garbage))
		}))
		defer srv.Close()

		c := newTestClient(t, srv.URL)
		got := c.EnhancePrompt(context.Background(), prompt)
		assert.Equal(rt, prompt, got)
	})
}

// A successful enhancement is the plain concatenation of the original
// prompt and the suffix the service returned, with no separator injected.
func TestProperty_EnhancePrompt_Concatenation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		prompt := rapid.StringMatching(`[a-zA-Z0-9,.! ]{1,80}`).Draw(rt, "prompt")
		suffix := rapid.StringMatching(`[a-zA-Z0-9,.! ]{0,80}`).Draw(rt, "suffix")

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp, jsonErr := json.Marshal(map[string]string{"option_1": suffix})
			require.NoError(rt, jsonErr)
			w.Write(resp)
		}))
		defer srv.Close()

		c := newTestClient(t, srv.URL)
		got := c.EnhancePrompt(context.Background(), prompt)

		if suffix == "" {
			assert.Equal(rt, prompt, got)
		} else {
			assert.Equal(rt, prompt+suffix, got)
		}
	})
}
