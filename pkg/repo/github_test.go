package repo

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient points a GitHub client at a local test server.
func newTestClient(t *testing.T, handler http.Handler) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGitHub(context.Background(), "https://github.com/acme/widget", &Config{
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("NewGitHub failed: %v", err)
	}

	return client
}

func TestResolveRevision(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/acme/widget/commits/v1.2.3", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "abc123def456")
	})

	client := newTestClient(t, mux)

	sha, err := client.ResolveRevision(context.Background(), "v1.2.3")
	if err != nil {
		t.Fatalf("ResolveRevision failed: %v", err)
	}
	if sha != "abc123def456" {
		t.Errorf("Expected sha abc123def456, got %q", sha)
	}
}

func TestResolveRevision_UnknownRef(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	client := newTestClient(t, mux)

	_, err := client.ResolveRevision(context.Background(), "no-such-tag")
	if err == nil {
		t.Fatal("Expected error for unknown ref")
	}

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("Expected ResolutionError, got %T: %v", err, err)
	}
	if resErr.Spec != "no-such-tag" {
		t.Errorf("Expected spec in error, got %q", resErr.Spec)
	}
}

func TestGetRawFile(t *testing.T) {
	content := `{"a": {"type": "boolean"}}`

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/acme/widget/contents/package.json", func(w http.ResponseWriter, r *http.Request) {
		if ref := r.URL.Query().Get("ref"); ref != "abc123" {
			t.Errorf("Expected ref abc123, got %q", ref)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"type":     "file",
			"encoding": "base64",
			"name":     "package.json",
			"path":     "package.json",
			"content":  base64.StdEncoding.EncodeToString([]byte(content)),
		})
	})

	client := newTestClient(t, mux)

	data, err := client.GetRawFile(context.Background(), "/package.json", "abc123")
	if err != nil {
		t.Fatalf("GetRawFile failed: %v", err)
	}
	if string(data) != content {
		t.Errorf("Expected %q, got %q", content, string(data))
	}
}

func TestGetRawFile_Missing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	client := newTestClient(t, mux)

	_, err := client.GetRawFile(context.Background(), "missing.json", "abc123")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected FetchError, got %T: %v", err, err)
	}
	if fetchErr.Path != "missing.json" || fetchErr.Revision != "abc123" {
		t.Errorf("Error missing context: %+v", fetchErr)
	}
}

func TestPostComment(t *testing.T) {
	var posted struct {
		Body string `json:"body"`
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/acme/widget/issues/42/comments", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
			t.Errorf("Decoding comment body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 1}`)
	})

	client := newTestClient(t, mux)

	if err := client.PostComment(context.Background(), 42, "report body"); err != nil {
		t.Fatalf("PostComment failed: %v", err)
	}
	if posted.Body != "report body" {
		t.Errorf("Expected comment body to reach the API, got %q", posted.Body)
	}
}
