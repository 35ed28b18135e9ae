package memorybackend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meetingmind/errors"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...ClientOption) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]ClientOption{
		WithLogger(zaptest.NewLogger(t)),
		WithRetryInterval(time.Millisecond),
	}, opts...)
	return NewClient(srv.URL, 5*time.Second, opts...)
}

func writeSSE(w http.ResponseWriter, payloads ...string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	for _, p := range payloads {
		fmt.Fprintf(w, "data: %s\n\n", p)
	}
}

func TestClient_GetMeeting(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/meetings/m-1" {
			http.NotFound(w, r)
			return
		}
		// naive timestamps, as the backend emits them
		io.WriteString(w, `{
			"id": "m-1",
			"title": "Weekly sync",
			"participants": ["Alice", "Bob"],
			"meeting_date": "2024-01-01T10:00:00",
			"notes": "notes",
			"summary": null,
			"status": "processing",
			"created_at": "2024-01-01T10:05:00.123456"
		}`)
	}))

	m, err := client.GetMeeting(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("get meeting: %v", err)
	}
	if m.Status != entities.MeetingStatusProcessing || len(m.Participants) != 2 {
		t.Fatalf("unexpected meeting %+v", m)
	}
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if !m.MeetingDate.Equal(want) {
		t.Fatalf("meeting date: got %v, want %v", m.MeetingDate, want)
	}
}

func TestClient_GetMeetingNotFound(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Meeting not found"}`)
	}))

	_, err := client.GetMeeting(context.Background(), "missing")
	if !errors.IsCode(err, errors.ErrorCode_MEETING_NOT_FOUND) {
		t.Fatalf("expected meeting not found, got %v", err)
	}
	if !errors.IsNotFound(err) {
		t.Fatal("IsNotFound should hold")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("404 must not be retried, got %d calls", got)
	}
}

func TestClient_RetriesTransientGET(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, `[]`)
	}))

	meetings, err := client.GetMeetings(context.Background(), entities.MeetingFilter{})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if len(meetings) != 0 {
		t.Fatalf("expected empty list, got %d", len(meetings))
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}), WithMaxRetries(2))

	_, err := client.GetCommitments(context.Background(), entities.CommitmentFilter{})
	if !errors.IsCode(err, errors.ErrorCode_BACKEND_UNAVAILABLE) {
		t.Fatalf("expected backend unavailable, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 1 call + 2 retries, got %d", got)
	}
}

func TestClient_DoesNotRetryWrites(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	status := entities.CommitmentStatusCompleted
	_, err := client.UpdateCommitment(context.Background(), "c-1", entities.CommitmentUpdate{Status: &status})
	if !errors.IsCode(err, errors.ErrorCode_COMMITMENT_UPDATE_FAILED) {
		t.Fatalf("expected update failed, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("PATCH must not be retried, got %d calls", got)
	}
}

func TestClient_GetCommitmentsQuery(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		io.WriteString(w, `[{
			"id": "c-1", "description": "Send deck", "owner": "Alice", "recipient": "Bob",
			"direction": "owed_to_me", "due_date": "2024-02-28T00:00:00Z", "status": "pending",
			"meeting_id": "m-1", "meeting_title": "Weekly sync",
			"created_at": "2024-01-01T10:05:00", "completed_at": null
		}]`)
	}))

	got, err := client.GetCommitments(context.Background(), entities.CommitmentFilter{Status: "pending", Contact: "Bob"})
	if err != nil {
		t.Fatalf("get commitments: %v", err)
	}
	if gotQuery != "contact=Bob&status=pending" {
		t.Fatalf("query: got %q", gotQuery)
	}
	if len(got) != 1 || got[0].DueDate == nil || got[0].CompletedAt != nil {
		t.Fatalf("unexpected commitments %+v", got)
	}

	if _, err := client.GetCommitments(context.Background(), entities.CommitmentFilter{Status: "all"}); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "" {
		t.Fatalf("status=all must not be sent, got %q", gotQuery)
	}
}

func TestClient_SubmitMeeting(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s", r.Method)
		}
		var in entities.MeetingInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if in.Title != "Weekly sync" {
			t.Errorf("title: got %q", in.Title)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"meeting_id":"m-9","status":"processing"}`)
	}))

	res, err := client.SubmitMeeting(context.Background(), entities.MeetingInput{
		Title:        "Weekly sync",
		Participants: []string{"Alice"},
		MeetingDate:  time.Now(),
		Notes:        "n",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.MeetingID != "m-9" || res.Status != entities.MeetingStatusProcessing {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestClient_RejectedRequest(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"detail":[{"loc":["body","title"],"msg":"field required"}]}`)
	}))

	_, err := client.SubmitMeeting(context.Background(), entities.MeetingInput{})
	if !errors.IsCode(err, errors.ErrorCode_MEETING_SUBMIT_FAILED) {
		t.Fatalf("expected submit failed, got %v", err)
	}
	if !strings.Contains(err.Error(), "field required") {
		t.Fatalf("backend detail lost: %v", err)
	}
}

func TestClient_MalformedResponse(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id": 12`)
	}), WithMaxRetries(0))

	_, err := client.GetMeeting(context.Background(), "m-1")
	if !errors.IsCode(err, errors.ErrorCode_BACKEND_MALFORMED) {
		t.Fatalf("expected malformed, got %v", err)
	}
}

func TestClient_BriefingStream(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/briefings/Alice Chen" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		if r.Header.Get("Accept") != "text/event-stream" {
			t.Errorf("accept: got %q", r.Header.Get("Accept"))
		}
		writeSSE(w,
			`{"type":"token","content":"Hi "}`,
			`{"type":"token","content":"there"}`,
			`{"type":"done"}`,
		)
	}))

	sub, err := client.OpenBriefingStream(context.Background(), "Alice Chen")
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer sub.Close()

	var got []string
	for {
		p, err := sub.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		got = append(got, p)
	}
	if len(got) != 3 || got[2] != `{"type":"done"}` {
		t.Fatalf("unexpected payloads %q", got)
	}
}

func TestClient_BriefingStreamRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.OpenBriefingStream(context.Background(), "Alice")
	if !errors.IsCode(err, errors.ErrorCode_BRIEFING_STREAM_FAILED) {
		t.Fatalf("expected stream failed, got %v", err)
	}
}

func TestClient_BriefingStreamCloseUnblocksNext(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeSSE(w, `{"type":"token","content":"first"}`)
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer close(release)

	sub, err := client.OpenBriefingStream(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	if _, err := sub.Next(); err != nil {
		t.Fatalf("first payload: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		_, err := sub.Next()
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	if err := sub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	_ = sub.Close()

	select {
	case err := <-errCh:
		if err != io.ErrClosedPipe {
			t.Fatalf("expected io.ErrClosedPipe, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Next did not return after Close")
	}
}

func TestClient_Health(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"ok","evermemos_mode":"mock"}`)
	}))
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}
