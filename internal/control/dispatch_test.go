package control

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleContainer_RejectsUnknownAction(t *testing.T) {
	session := newFakeSession()
	client := newTestClient(session, 0)

	ok := client.HandleContainer(testCtx(t), ActionRequest{Action: "destroy", ContainerID: "abc", EndpointID: 1})

	assert.False(t, ok)
	assert.Empty(t, session.calls)
}

func TestHandleContainer_RejectsEmptyContainerID(t *testing.T) {
	session := newFakeSession()
	client := newTestClient(session, 0)

	for _, id := range []string{"", "   ", "\t\n"} {
		ok := client.HandleContainer(testCtx(t), ActionRequest{Action: ActionStart, ContainerID: id, EndpointID: 1})
		assert.False(t, ok, "container id %q should be rejected", id)
	}
	assert.Empty(t, session.calls)
}

func TestHandleContainer_RejectsNegativeEndpoint(t *testing.T) {
	session := newFakeSession()
	client := newTestClient(session, 0)

	ok := client.HandleContainer(testCtx(t), ActionRequest{Action: ActionStart, ContainerID: "abc", EndpointID: -3})

	assert.False(t, ok)
	assert.Empty(t, session.calls)
}

func TestHandleContainer_RejectsBadRestartTimeout(t *testing.T) {
	session := newFakeSession()
	client := newTestClient(session, 0)

	for _, ms := range []float64{-1, math.NaN(), math.Inf(1)} {
		timeout := ms
		ok := client.HandleContainer(testCtx(t), ActionRequest{
			Action:      ActionRestart,
			ContainerID: "abc",
			EndpointID:  1,
			TimeoutMS:   &timeout,
		})
		assert.False(t, ok, "timeout %v should be rejected", ms)
	}
	assert.Empty(t, session.calls)
}

func TestHandleContainer_DispatchTable(t *testing.T) {
	tests := []struct {
		action Action
		method string
		path   string
	}{
		{ActionStart, "POST", "/api/endpoints/5/docker/containers/abc/start"},
		{ActionStop, "POST", "/api/endpoints/5/docker/containers/abc/stop"},
		{ActionPause, "POST", "/api/endpoints/5/docker/containers/abc/pause"},
		{ActionUnpause, "POST", "/api/endpoints/5/docker/containers/abc/unpause"},
		{ActionKill, "POST", "/api/endpoints/5/docker/containers/abc/kill"},
		{ActionRestart, "POST", "/api/endpoints/5/docker/containers/abc/restart"},
		{ActionRemove, "DELETE", "/api/endpoints/5/docker/containers/abc"},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			session := newFakeSession()
			client := newTestClient(session, 0)

			ok := client.HandleContainer(testCtx(t), ActionRequest{
				Action:      tt.action,
				ContainerID: "abc",
				EndpointID:  5,
			})

			assert.True(t, ok)
			// Explicit endpoint: exactly one call, no resolver traffic.
			require.Len(t, session.calls, 1)
			assert.Equal(t, tt.method, session.calls[0].method)
			assert.Equal(t, tt.path, session.calls[0].path)
		})
	}
}

func TestHandleContainer_KillSignal(t *testing.T) {
	session := newFakeSession()
	client := newTestClient(session, 0)

	ok := client.HandleContainer(testCtx(t), ActionRequest{Action: ActionKill, ContainerID: "abc", EndpointID: 1})
	require.True(t, ok)
	require.Len(t, session.calls, 1)
	assert.Equal(t, "SIGKILL", session.calls[0].query.Get("signal"))

	ok = client.HandleContainer(testCtx(t), ActionRequest{Action: ActionKill, ContainerID: "abc", EndpointID: 1, Signal: "SIGTERM"})
	require.True(t, ok)
	require.Len(t, session.calls, 2)
	assert.Equal(t, "SIGTERM", session.calls[1].query.Get("signal"))
}

func TestHandleContainer_RestartTimeoutQuery(t *testing.T) {
	tests := []struct {
		name  string
		ms    float64
		wantT string
	}{
		{name: "1500ms", ms: 1500, wantT: "1.5"},
		{name: "2000ms", ms: 2000, wantT: "2"},
		{name: "10s", ms: 10000, wantT: "10"},
		{name: "rounds to two significant digits", ms: 125000, wantT: "120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newFakeSession()
			client := newTestClient(session, 0)

			timeout := tt.ms
			ok := client.HandleContainer(testCtx(t), ActionRequest{
				Action:      ActionRestart,
				ContainerID: "abc",
				EndpointID:  1,
				TimeoutMS:   &timeout,
			})

			require.True(t, ok)
			require.Len(t, session.calls, 1)
			assert.Equal(t, tt.wantT, session.calls[0].query.Get("t"))
		})
	}
}

func TestHandleContainer_RestartWithoutTimeout(t *testing.T) {
	session := newFakeSession()
	client := newTestClient(session, 0)

	ok := client.HandleContainer(testCtx(t), ActionRequest{Action: ActionRestart, ContainerID: "abc", EndpointID: 1})

	require.True(t, ok)
	require.Len(t, session.calls, 1)
	assert.False(t, session.calls[0].query.Has("t"))
}

func TestHandleContainer_RemoveFlags(t *testing.T) {
	session := newFakeSession()
	client := newTestClient(session, 0)

	ok := client.HandleContainer(testCtx(t), ActionRequest{
		Action:        ActionRemove,
		ContainerID:   "abc",
		EndpointID:    1,
		Force:         true,
		RemoveVolumes: true,
	})
	require.True(t, ok)
	require.Len(t, session.calls, 1)
	assert.Equal(t, "true", session.calls[0].query.Get("force"))
	assert.Equal(t, "true", session.calls[0].query.Get("v"))

	// Flags are appended only when true.
	ok = client.HandleContainer(testCtx(t), ActionRequest{Action: ActionRemove, ContainerID: "abc", EndpointID: 1})
	require.True(t, ok)
	require.Len(t, session.calls, 2)
	assert.False(t, session.calls[1].query.Has("force"))
	assert.False(t, session.calls[1].query.Has("v"))
}

func TestHandleContainer_TransportErrorIsCaught(t *testing.T) {
	session := newFakeSession()
	session.fail("POST", "/api/endpoints/1/docker/containers/abc/start", errors.New("connection refused"))
	client := newTestClient(session, 0)

	ok := client.HandleContainer(testCtx(t), ActionRequest{Action: ActionStart, ContainerID: "abc", EndpointID: 1})

	assert.False(t, ok)
}

func TestHandleContainer_ResolvesEndpointWhenOmitted(t *testing.T) {
	session := newFakeSession()
	session.respond("GET", "/api/endpoints", []Endpoint{{ID: 7, Name: "primary"}})
	client := newTestClient(session, 0)

	ok := client.HandleContainer(testCtx(t), ActionRequest{Action: ActionStart, ContainerID: "abc"})

	require.True(t, ok)
	require.Len(t, session.calls, 2)
	assert.Equal(t, "GET", session.calls[0].method)
	assert.Equal(t, "/api/endpoints", session.calls[0].path)
	assert.Equal(t, "/api/endpoints/7/docker/containers/abc/start", session.calls[1].path)
}

func TestHandleContainer_NoEndpointAvailable(t *testing.T) {
	session := newFakeSession()
	session.respond("GET", "/api/endpoints", []Endpoint{})
	client := newTestClient(session, 0)

	ok := client.HandleContainer(testCtx(t), ActionRequest{Action: ActionStart, ContainerID: "abc"})

	assert.False(t, ok)
	// Only the resolution attempt itself, no action call.
	require.Len(t, session.calls, 1)
	assert.Equal(t, "/api/endpoints", session.calls[0].path)
}

func TestRestartSeconds(t *testing.T) {
	assert.Equal(t, "1.5", restartSeconds(1500))
	assert.Equal(t, "2", restartSeconds(2000))
	assert.Equal(t, "0", restartSeconds(0))
	assert.Equal(t, "120", restartSeconds(125000))
	assert.Equal(t, "0.25", restartSeconds(250))
}
