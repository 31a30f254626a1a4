package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ReFOiL/fitboddy-admin/internal/adminclient"
)

const questionListJSON = `[
	{"id": 1, "key": "system:age", "order": 1, "text": "How old are you?", "answer_type": "number", "is_active": true},
	{"id": 2, "key": "goal", "order": 2, "text": "What is your goal?", "answer_type": "text", "is_active": true},
	{"id": 3, "key": "diet", "order": 3, "text": "Diet preferences", "answer_type": "text", "is_active": true}
]`

func newConsoleSetup(t *testing.T) (*int, *adminclient.QuestionListView, *adminclient.Client) {
	t.Helper()

	var mu sync.Mutex
	mutations := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/admin/questions":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, questionListJSON)
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/admin/questions/"):
			mu.Lock()
			mutations++
			mu.Unlock()
			fmt.Fprint(w, `{"message": "Question updated"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	session := adminclient.NewSession("secret", &terminalNavigator{path: "/"})
	client := adminclient.NewClient(server.URL, session, nil)
	view := adminclient.NewQuestionListView(client, adminclient.NewCache())
	return &mutations, view, client
}

func TestBulkSetActiveRejectsSystemIDsBeforeDispatch(t *testing.T) {
	mutations, view, client := newConsoleSetup(t)

	err := bulkSetActive(context.Background(), view, client, []string{"1", "2"}, false)
	if err == nil {
		t.Fatalf("expected error for a system question id")
	}
	if *mutations != 0 {
		t.Fatalf("expected no mutation requests, got %d", *mutations)
	}
}

func TestBulkSetActiveRejectsUnknownIDs(t *testing.T) {
	mutations, view, client := newConsoleSetup(t)

	err := bulkSetActive(context.Background(), view, client, []string{"99"}, false)
	if err == nil {
		t.Fatalf("expected error for an unknown id")
	}
	if *mutations != 0 {
		t.Fatalf("expected no mutation requests, got %d", *mutations)
	}
}

func TestBulkSetActiveDispatchesSelectableIDs(t *testing.T) {
	mutations, view, client := newConsoleSetup(t)

	if err := bulkSetActive(context.Background(), view, client, []string{"2", "3"}, false); err != nil {
		t.Fatalf("bulkSetActive: %v", err)
	}
	if *mutations != 2 {
		t.Fatalf("expected 2 mutation requests, got %d", *mutations)
	}
}
