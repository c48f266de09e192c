package transport_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stackradar/console/transport"
)

type staticCredentials string

func (s staticCredentials) Credential() string {
	return string(s)
}

func TestDoAttachesBearerCredential(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := transport.New(srv.URL, transport.WithCredentialSource(staticCredentials("tok-123")))
	var out map[string]bool
	err := client.Do(context.Background(), transport.Request{Path: "/users"}, &out)
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
	require.True(t, out["ok"])
}

func TestDoOmitsAuthorizationWhenNoAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := transport.New(srv.URL, transport.WithCredentialSource(staticCredentials("tok-123")))
	err := client.Do(context.Background(), transport.Request{Method: http.MethodPost, Path: "/login", NoAuth: true}, nil)
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestDoOmitsAuthorizationWhenCredentialEmpty(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := transport.New(srv.URL, transport.WithCredentialSource(staticCredentials("")))
	err := client.Do(context.Background(), transport.Request{Path: "/users"}, nil)
	require.NoError(t, err)
	require.Empty(t, gotAuth)
}

func TestDoSetsJSONHeadersAndRequestID(t *testing.T) {
	var accept, contentType, requestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		contentType = r.Header.Get("Content-Type")
		requestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := transport.New(srv.URL)
	require.NoError(t, client.Do(context.Background(), transport.Request{Path: "/dashboard/stats"}, nil))
	require.Equal(t, "application/json", accept)
	require.Equal(t, "application/json", contentType)
	require.NotEmpty(t, requestID)
}

func TestDoUnauthorizedReturnsSentinelAndFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookFired := false
	client := transport.New(srv.URL, transport.WithUnauthorizedHook(func() { hookFired = true }))
	err := client.Do(context.Background(), transport.Request{Path: "/users"}, nil)
	require.ErrorIs(t, err, transport.ErrUnauthorized)
	require.True(t, hookFired)
}

func TestDoParsesErrorMessageFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"email already taken"}`))
	}))
	defer srv.Close()

	client := transport.New(srv.URL)
	err := client.Do(context.Background(), transport.Request{Method: http.MethodPost, Path: "/users"}, nil)

	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	require.Equal(t, "email already taken", apiErr.Message)
}

func TestDoFallsBackToGenericHTTPMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	client := transport.New(srv.URL)
	err := client.Do(context.Background(), transport.Request{Path: "/teams"}, nil)

	var apiErr *transport.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "HTTP 500", apiErr.Message)
}

func TestDoNoContentSkipsDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := transport.New(srv.URL)
	out := map[string]string{"untouched": "yes"}
	err := client.Do(context.Background(), transport.Request{Method: http.MethodDelete, Path: "/teams/3"}, &out)
	require.NoError(t, err)
	require.Equal(t, "yes", out["untouched"])
}

func TestDoEmptyBodyTreatedAsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := transport.New(srv.URL)
	var out map[string]any
	require.NoError(t, client.Do(context.Background(), transport.Request{Path: "/technologies/statuses"}, &out))
	require.Nil(t, out)
}

func TestDoEncodesQueryInOrder(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := transport.New(srv.URL)
	q := transport.Query{}.Set("page", 1).Set("q", "").Set("status", "active")
	require.NoError(t, client.Do(context.Background(), transport.Request{Path: "/projects", Query: q}, nil))
	require.Equal(t, "page=1&status=active", gotQuery)
}

func TestDoCancellationRejectsWithContextError(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := transport.New(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- client.Do(ctx, transport.Request{Path: "/projects"}, nil)
	}()

	<-started
	cancel()

	err := <-errCh
	require.ErrorIs(t, err, context.Canceled)

	var apiErr *transport.APIError
	require.False(t, errors.As(err, &apiErr), "cancellation must not look like a request failure")
}
