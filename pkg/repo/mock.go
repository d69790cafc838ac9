package repo

import (
	"context"
	"errors"
)

// MockClient is an in-memory Client for tests.
type MockClient struct {
	revisions map[string]string            // spec -> SHA
	files     map[string]map[string][]byte // SHA -> path -> content
	Comments  []PostedComment
}

// PostedComment records a PostComment call.
type PostedComment struct {
	PRNumber int
	Body     string
}

func NewMockClient() *MockClient {
	return &MockClient{
		revisions: map[string]string{},
		files:     map[string]map[string][]byte{},
	}
}

// AddRevision registers a resolvable revision spec.
func (m *MockClient) AddRevision(spec, sha string) {
	m.revisions[spec] = sha
}

// AddFile registers file content at a resolved revision.
func (m *MockClient) AddFile(sha, path string, content []byte) {
	if m.files[sha] == nil {
		m.files[sha] = map[string][]byte{}
	}
	m.files[sha][path] = content
}

func (m *MockClient) ResolveRevision(ctx context.Context, spec string) (string, error) {
	sha, ok := m.revisions[spec]
	if !ok {
		return "", &ResolutionError{Spec: spec, Err: errors.New("unknown revision")}
	}
	return sha, nil
}

func (m *MockClient) GetRawFile(ctx context.Context, path, revision string) ([]byte, error) {
	content, ok := m.files[revision][path]
	if !ok {
		return nil, &FetchError{Path: path, Revision: revision, Err: errors.New("not found")}
	}
	return content, nil
}

func (m *MockClient) PostComment(ctx context.Context, prNumber int, body string) error {
	m.Comments = append(m.Comments, PostedComment{PRNumber: prNumber, Body: body})
	return nil
}
