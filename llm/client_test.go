package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseHandler(t *testing.T, lines []string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "text/event-stream")
		for _, line := range lines {
			_, _ = w.Write([]byte(line + "\n"))
		}
	}
}

func TestClient_Stream_DeliversFramesInOrder(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t, []string{
		`data: {"type":"content","content":"Hel"}`,
		`data: {"type":"content","content":"lo"}`,
		`data: {"type":"tool_calls","tool_calls":[{"index":0,"id":"call_1","function":{"name":"add_wire","arguments":"{}"}}]}`,
		`data: [DONE]`,
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	var events []Event
	err := client.Stream(context.Background(), &Request{}, func(ev Event) error {
		events = append(events, ev)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Hel", events[0].Content)
	assert.Equal(t, "lo", events[1].Content)
	require.Len(t, events[2].ToolCalls, 1)
	assert.Equal(t, "call_1", events[2].ToolCalls[0].ID)
	assert.Equal(t, "add_wire", events[2].ToolCalls[0].Function.Name)
}

func TestClient_Stream_StopsAtDoneSentinel(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t, []string{
		`data: {"type":"content","content":"a"}`,
		`data: [DONE]`,
		`data: {"type":"content","content":"after"}`,
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	var count int
	err := client.Stream(context.Background(), &Request{}, func(Event) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestClient_Stream_SkipsMalformedFrames(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t, []string{
		`data: {"type":"content","content":"good"}`,
		`data: {not json`,
		``,
		`: comment line`,
		`data: {"type":"content","content":"also good"}`,
		`data: [DONE]`,
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	var texts []string
	err := client.Stream(context.Background(), &Request{}, func(ev Event) error {
		texts = append(texts, ev.Content)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"good", "also good"}, texts)
}

func TestClient_Stream_EOFWithoutDoneIsClean(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t, []string{
		`data: {"type":"content","content":"partial"}`,
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	err := client.Stream(context.Background(), &Request{}, func(Event) error { return nil })
	assert.NoError(t, err)
}

func TestClient_Stream_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream overloaded"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	err := client.Stream(context.Background(), &Request{}, func(Event) error { return nil })
	require.Error(t, err)

	var serr *StatusError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusServiceUnavailable, serr.Status)
	assert.Equal(t, "upstream overloaded", serr.Body)
}

func TestClient_Stream_SendsBearerToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("data: [DONE]\n"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key")
	err := client.Stream(context.Background(), &Request{}, func(Event) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", auth)
}

func TestClient_Stream_CallbackErrorStopsStream(t *testing.T) {
	srv := httptest.NewServer(sseHandler(t, []string{
		`data: {"type":"content","content":"a"}`,
		`data: {"type":"content","content":"b"}`,
		`data: [DONE]`,
	}))
	defer srv.Close()

	wantErr := errors.New("consumer gave up")
	client := NewClient(srv.URL, "")
	var count int
	err := client.Stream(context.Background(), &Request{}, func(Event) error {
		count++
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, count)
}

func TestClient_Stream_ForcesStreamFlag(t *testing.T) {
	var sawStream bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		sawStream = req.Stream
		_, _ = w.Write([]byte("data: [DONE]\n"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	err := client.Stream(context.Background(), &Request{Stream: false}, func(Event) error { return nil })
	require.NoError(t, err)
	assert.True(t, sawStream)
}
