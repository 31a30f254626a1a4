package adminclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReFOiL/fitboddy-admin/internal/middleware"
	"github.com/ReFOiL/fitboddy-admin/internal/models"
)

type stubNavigator struct {
	path      string
	navigated []string
}

func (n *stubNavigator) CurrentPath() string { return n.path }

func (n *stubNavigator) Navigate(path string) {
	n.path = path
	n.navigated = append(n.navigated, path)
}

type orderCall struct {
	id       int64
	newOrder int
}

// fakeAdminServer is an in-memory stand-in for the question routes the client
// talks to. It records every mutation so tests can assert on the wire calls.
type fakeAdminServer struct {
	mu          sync.Mutex
	questions   []models.Question
	listCalls   int
	orderCalls  []orderCall
	activeCalls map[int64]bool
	failOrder   bool
	failActive  map[int64]bool
	server      *httptest.Server
}

func newFakeAdminServer(questions []models.Question) *fakeAdminServer {
	f := &fakeAdminServer{
		questions:   questions,
		activeCalls: map[int64]bool{},
		failActive:  map[int64]bool{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeAdminServer) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/admin/questions":
		f.listCalls++
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(f.questions)

	case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/order"):
		id := pathID(r.URL.Path, "/order")
		if f.failOrder {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error": "Internal server error"}`)
			return
		}
		var body struct {
			NewOrder int `json:"new_order"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		f.orderCalls = append(f.orderCalls, orderCall{id: id, newOrder: body.NewOrder})
		fmt.Fprint(w, `{"message": "Order updated"}`)

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/admin/questions/"):
		id := pathID(r.URL.Path, "")
		if f.failActive[id] {
			w.WriteHeader(http.StatusConflict)
			fmt.Fprint(w, `{"error": "System questions are read-only"}`)
			return
		}
		var body struct {
			IsActive *bool `json:"is_active"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.IsActive != nil {
			f.activeCalls[id] = *body.IsActive
		}
		fmt.Fprint(w, `{"message": "Question updated"}`)

	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "not found"}`)
	}
}

func pathID(path, suffix string) int64 {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "/admin/questions/"), suffix)
	id, _ := strconv.ParseInt(strings.Trim(trimmed, "/"), 10, 64)
	return id
}

func (f *fakeAdminServer) Close() { f.server.Close() }

func newTestClient(baseURL, token string, navigator Navigator) (*Client, *Session) {
	session := NewSession(token, navigator)
	return NewClient(baseURL, session, nil), session
}

func TestForbiddenResponseTearsDownSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": "Invalid admin token"}`)
	}))
	defer server.Close()

	navigator := &stubNavigator{path: "/questions"}
	client, session := newTestClient(server.URL, "stale-token", navigator)

	_, err := client.ListQuestions(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "Invalid admin token", apiErr.Message)

	assert.Empty(t, session.Token())
	assert.Equal(t, []string{LoginPath}, navigator.navigated)
}

func TestForbiddenOnLoginScreenDoesNotNavigate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": "Invalid admin token"}`)
	}))
	defer server.Close()

	navigator := &stubNavigator{path: LoginPath}
	client, session := newTestClient(server.URL, "stale-token", navigator)

	_, err := client.ListQuestions(context.Background())
	require.Error(t, err)

	assert.Empty(t, session.Token())
	assert.Empty(t, navigator.navigated)
}

// A domain rejection must leave a valid session alone; only token failures
// carry 403 and tear it down.
func TestDomainRejectionKeepsSessionIntact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"error": "System questions are read-only"}`)
	}))
	defer server.Close()

	navigator := &stubNavigator{path: "/questions"}
	client, session := newTestClient(server.URL, "valid-token", navigator)

	err := client.DeactivateQuestion(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "System questions are read-only", apiErr.Message)

	assert.Equal(t, "valid-token", session.Token())
	assert.Empty(t, navigator.navigated)
}

func TestRequestsCarryTokenHeader(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(middleware.AdminTokenHeader)
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL, "secret", &stubNavigator{path: "/"})

	_, err := client.ListQuestions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", gotToken)
}

func TestErrorMessageExtractionPrecedence(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		expected string
	}{
		{"detail wins", `{"detail": "from detail", "message": "from message", "error": "from error"}`, "from detail"},
		{"message next", `{"message": "from message", "error": "from error"}`, "from message"},
		{"error last", `{"error": "from error"}`, "from error"},
		{"empty object", `{}`, "Network error"},
		{"not json", `<html>bad gateway</html>`, "Network error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractErrorMessage(strings.NewReader(tc.body)))
		})
	}
}

func TestNetworkFailureUsesGenericMessage(t *testing.T) {
	// Point at a closed server so the request itself fails.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client, _ := newTestClient(server.URL, "secret", &stubNavigator{path: "/"})

	_, err := client.ListQuestions(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, "Network error", apiErr.Message)
}

func TestVideoURLAppendsEscapedToken(t *testing.T) {
	client, _ := newTestClient("http://api", "s3cr3t+/=", &stubNavigator{path: "/"})

	assert.Equal(t, "http://cdn/video.mp4?token=s3cr3t%2B%2F%3D", client.VideoURL("http://cdn/video.mp4"))
	assert.Equal(t, "http://cdn/video.mp4?v=2&token=s3cr3t%2B%2F%3D", client.VideoURL("http://cdn/video.mp4?v=2"))
}

func TestVideoURLLeavesExistingTokenAlone(t *testing.T) {
	client, _ := newTestClient("http://api", "s3cr3t", &stubNavigator{path: "/"})

	withToken := "http://cdn/video.mp4?token=already"
	assert.Equal(t, withToken, client.VideoURL(withToken))
	assert.Equal(t, "", client.VideoURL(""))
}

func TestVideoURLWithoutSessionToken(t *testing.T) {
	client, _ := newTestClient("http://api", "", &stubNavigator{path: "/"})

	assert.Equal(t, "http://cdn/video.mp4", client.VideoURL("http://cdn/video.mp4"))
}
