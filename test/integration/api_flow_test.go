package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-writing-assistant-be/internal/bootstrap"
	"ai-writing-assistant-be/internal/config"
	"ai-writing-assistant-be/internal/dto"
	"ai-writing-assistant-be/internal/pkg/serverutils"
	"ai-writing-assistant-be/internal/server"
)

// generateOK fakes the Ollama generate endpoint with a fixed reply, so the
// whole stack runs without a model server.
func generateOK(response string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"model":"llama3","response":%q,"done":true}`, response)
	}
}

func newTestApp(t *testing.T, upstream http.HandlerFunc) *fiber.App {
	t.Helper()

	llm := httptest.NewServer(upstream)
	t.Cleanup(llm.Close)

	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_MODEL", "llama3")
	t.Setenv("OLLAMA_BASE_URL", llm.URL)
	cfg := config.Load()

	container := bootstrap.NewContainer(cfg)
	srv := server.New(cfg, container)
	return srv.GetApp()
}

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decode[T any](t *testing.T, resp *http.Response) serverutils.BaseResponse[T] {
	t.Helper()
	var out serverutils.BaseResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAssistantFlow(t *testing.T) {
	app := newTestApp(t, generateOK("He went to school yesterday."))

	// 1. Create a session
	resp, err := app.Test(jsonRequest("POST", "/api/assistant/v1/session", ""), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	created := decode[dto.CreateSessionResponse](t, resp)
	assert.True(t, created.Success)
	sessionId := created.Data.Id.String()
	base := "/api/assistant/v1/session/" + sessionId

	// 2. The home screen lists three modes
	resp, err = app.Test(jsonRequest("GET", "/api/assistant/v1/modes", ""), -1)
	require.NoError(t, err)
	modes := decode[[]dto.ModeDTO](t, resp)
	require.Len(t, modes.Data, 3)
	assert.Equal(t, "Grammar Correction", modes.Data[0].Title)

	// 3. Pick grammar mode, the greeting seeds the transcript
	resp, err = app.Test(jsonRequest("PUT", base+"/mode", `{"mode":"grammar"}`), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	state := decode[dto.SessionStateResponse](t, resp)
	assert.Equal(t, "grammar", state.Data.Mode)
	require.Len(t, state.Data.Messages, 1)
	assert.Equal(t, "I'm your Grammar Correction assistant. How can I help?", state.Data.Messages[0].Content)

	// Picking a mode twice conflicts.
	resp, err = app.Test(jsonRequest("PUT", base+"/mode", `{"mode":"content"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// 4. Type a draft
	resp, err = app.Test(jsonRequest("PATCH", base+"/draft", `{"draft":"He go to school yesterday"}`), -1)
	require.NoError(t, err)
	draft := decode[dto.UpdateDraftResponse](t, resp)
	assert.Equal(t, 5, draft.Data.WordCount)

	// 5. Submit: the reply lands in the transcript and in history
	resp, err = app.Test(jsonRequest("POST", base+"/submit", ""), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	submitted := decode[dto.SubmitResponse](t, resp)
	assert.Equal(t, "He go to school yesterday", submitted.Data.Sent.Content)
	assert.Equal(t, "He went to school yesterday.", submitted.Data.Reply.Content)

	resp, err = app.Test(jsonRequest("GET", base, ""), -1)
	require.NoError(t, err)
	state = decode[dto.SessionStateResponse](t, resp)
	assert.Empty(t, state.Data.Draft)
	assert.Len(t, state.Data.Messages, 3)

	// 6. History holds the exchange, newest first
	resp, err = app.Test(jsonRequest("GET", base+"/history", ""), -1)
	require.NoError(t, err)
	history := decode[[]dto.HistoryEntryDTO](t, resp)
	require.Len(t, history.Data, 1)
	assert.Equal(t, "He go to school yesterday", history.Data[0].Input)
	assert.Equal(t, "He went to school yesterday.", history.Data[0].Output)

	// 7. Copy the stored output
	resp, err = app.Test(jsonRequest("POST", base+"/history/0/copy", ""), -1)
	require.NoError(t, err)
	copied := decode[dto.CopyResponse](t, resp)
	assert.Equal(t, "He went to school yesterday.", copied.Data.Text)

	// 8. Reset keeps history but clears the workspace
	resp, err = app.Test(jsonRequest("POST", base+"/reset", ""), -1)
	require.NoError(t, err)
	state = decode[dto.SessionStateResponse](t, resp)
	assert.Empty(t, state.Data.Mode)
	assert.Empty(t, state.Data.Messages)
	require.Len(t, state.Data.History, 1)

	// 9. Replay restores the input and mode from history
	resp, err = app.Test(jsonRequest("POST", base+"/history/0/replay", ""), -1)
	require.NoError(t, err)
	state = decode[dto.SessionStateResponse](t, resp)
	assert.Equal(t, "grammar", state.Data.Mode)
	assert.Equal(t, "He go to school yesterday", state.Data.Draft)
}

func TestAssistantTemplates(t *testing.T) {
	app := newTestApp(t, generateOK("A blog post."))

	resp, err := app.Test(jsonRequest("POST", "/api/assistant/v1/session", ""), -1)
	require.NoError(t, err)
	created := decode[dto.CreateSessionResponse](t, resp)
	base := "/api/assistant/v1/session/" + created.Data.Id.String()

	// Templates are listable per mode.
	resp, err = app.Test(jsonRequest("GET", "/api/assistant/v1/templates?mode=content", ""), -1)
	require.NoError(t, err)
	templates := decode[[]dto.TemplateDTO](t, resp)
	require.Len(t, templates.Data, 3)
	assert.Equal(t, "Blog Post", templates.Data[0].Name)

	// Applying one needs a mode first.
	resp, err = app.Test(jsonRequest("POST", base+"/template", `{"template":"Blog Post"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest("PUT", base+"/mode", `{"mode":"content"}`), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", base+"/template", `{"template":"Blog Post"}`), -1)
	require.NoError(t, err)
	applied := decode[dto.ApplyTemplateResponse](t, resp)
	assert.Equal(t, "Write a blog post about: [topic]", applied.Data.Draft)

	// A grammar tool is rejected on a content session.
	resp, err = app.Test(jsonRequest("POST", base+"/template", `{"template":"Formal Tone"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAssistantErrorMapping(t *testing.T) {
	app := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	})

	// Unknown session ids map to 404, malformed ones to 400.
	resp, err := app.Test(jsonRequest("GET", "/api/assistant/v1/session/"+uuid.NewString(), ""), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	envelope := decode[any](t, resp)
	assert.False(t, envelope.Success)
	assert.Equal(t, fiber.StatusNotFound, envelope.Code)

	resp, err = app.Test(jsonRequest("GET", "/api/assistant/v1/session/not-a-uuid", ""), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Setup a session to exercise the failure paths.
	resp, err = app.Test(jsonRequest("POST", "/api/assistant/v1/session", ""), -1)
	require.NoError(t, err)
	created := decode[dto.CreateSessionResponse](t, resp)
	base := "/api/assistant/v1/session/" + created.Data.Id.String()

	// Submitting before picking a mode is a client error.
	resp, err = app.Test(jsonRequest("POST", base+"/submit", `{"draft":"text"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// A value outside the known modes fails validation.
	resp, err = app.Test(jsonRequest("PUT", base+"/mode", `{"mode":"poetry"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest("PUT", base+"/mode", `{"mode":"grammar"}`), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Upstream failures surface as 502 and keep the draft for a retry.
	resp, err = app.Test(jsonRequest("POST", base+"/submit", `{"draft":"still mine"}`), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	resp, err = app.Test(jsonRequest("GET", base, ""), -1)
	require.NoError(t, err)
	state := decode[dto.SessionStateResponse](t, resp)
	assert.Equal(t, "still mine", state.Data.Draft)
	assert.False(t, state.Data.Processing)
}
