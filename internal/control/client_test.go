package control

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"
	"time"
)

// fakeSession records every call the control layer issues and serves canned
// responses keyed by "METHOD path".
type fakeSession struct {
	validated bool
	calls     []recordedCall
	responses map[string][]byte
	errors    map[string]error
}

type recordedCall struct {
	method string
	path   string
	query  url.Values
	body   any
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		validated: true,
		responses: make(map[string][]byte),
		errors:    make(map[string]error),
	}
}

func (f *fakeSession) respond(method, path string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	f.responses[method+" "+path] = payload
}

func (f *fakeSession) fail(method, path string, err error) {
	f.errors[method+" "+path] = err
}

func (f *fakeSession) IsValidated() bool { return f.validated }

func (f *fakeSession) do(method, path string, query url.Values, body any) ([]byte, error) {
	f.calls = append(f.calls, recordedCall{method: method, path: path, query: query, body: body})
	key := method + " " + path
	if err, ok := f.errors[key]; ok {
		return nil, err
	}
	if resp, ok := f.responses[key]; ok {
		return resp, nil
	}
	return []byte(`{}`), nil
}

func (f *fakeSession) Get(_ context.Context, path string, query url.Values) ([]byte, error) {
	return f.do("GET", path, query, nil)
}

func (f *fakeSession) Post(_ context.Context, path string, query url.Values, body any) ([]byte, error) {
	return f.do("POST", path, query, body)
}

func (f *fakeSession) Put(_ context.Context, path string, query url.Values, body any) ([]byte, error) {
	return f.do("PUT", path, query, body)
}

func (f *fakeSession) Delete(_ context.Context, path string, query url.Values) ([]byte, error) {
	return f.do("DELETE", path, query, nil)
}

// newTestClient builds a client over a fake session with a negligible
// redeploy settle delay so workflow tests run fast.
func newTestClient(session *fakeSession, defaultEndpoint int) *Client {
	return New(session, Config{
		DefaultEndpoint: defaultEndpoint,
		SettleDelay:     time.Millisecond,
	})
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
