package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig(t *testing.T) {
	assert.IsType(t, Console{}, FromConfig("", ""))
	assert.IsType(t, Console{}, FromConfig("token", ""))
	assert.IsType(t, Console{}, FromConfig("", "user"))
	assert.IsType(t, &LINE{}, FromConfig("token", "user"))
}

func TestConsolePushNeverFails(t *testing.T) {
	assert.NoError(t, Console{}.Push(context.Background(), "hello"))
}

func TestLINEPush(t *testing.T) {
	var gotAuth string
	var gotBody pushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	l := NewLINE("secret", "U123")
	l.Endpoint = srv.URL

	require.NoError(t, l.Push(context.Background(), "seats are open"))
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "U123", gotBody.To)
	require.Len(t, gotBody.Messages, 1)
	assert.Equal(t, "text", gotBody.Messages[0].Type)
	assert.Equal(t, "seats are open", gotBody.Messages[0].Text)
}

func TestLINEPushBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	l := NewLINE("bad", "U123")
	l.Endpoint = srv.URL

	err := l.Push(context.Background(), "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestLINEPushTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	l := NewLINE("token", "U123")
	l.Endpoint = srv.URL

	assert.Error(t, l.Push(context.Background(), "msg"))
}
