package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"achievement-manager/core/racache"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (afero.Fs, racache.Store) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/emu/RAPrefs.cfg", []byte(`{"Username":"user","Token":"tok"}`), 0o644))
	return fs, racache.NewFS(fs, "/emu")
}

func TestClient_Fetch(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.UserAgent()
		switch r.URL.Query().Get("g") {
		case "1":
			_, _ = w.Write([]byte(multiSetJSON))
		case "2":
			_, _ = w.Write([]byte(`{"Success": false}`))
		case "3":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(multiSetJSON))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	fs, store := newTestStore(t)
	client := NewClient(Config{BaseURL: srv.URL + "/", TimeoutSeconds: 1, UserAgent: "achievement-manager"}, srv.Client(), store, zap.NewNop())
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		snap, err := client.Fetch(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Sonic", snap.Title)
		assert.Equal(t, "g=1&r=achievementsets&t=tok&u=user", gotQuery)
		assert.Equal(t, "achievement-manager", gotAgent)

		stored, err := afero.ReadFile(fs, "/emu/RACache/Data/1.json")
		require.NoError(t, err)
		assert.JSONEq(t, multiSetJSON, string(stored))
	})

	t.Run("NotSuccessful", func(t *testing.T) {
		_, err := client.Fetch(ctx, 2)
		assert.EqualError(t, err, "failed to fetch remote data: expected payload.Success to be true, but got false")
	})

	t.Run("HTTPError", func(t *testing.T) {
		_, err := client.Fetch(ctx, 4)
		assert.EqualError(t, err, "failed to fetch remote data: HTTP 500")
	})

	t.Run("Timeout", func(t *testing.T) {
		slow := NewClient(Config{BaseURL: srv.URL, TimeoutSeconds: 1}, srv.Client(), store, zap.NewNop())
		slow.cfg.TimeoutSeconds = 0
		ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		_, err := slow.Fetch(ctx, 3)
		assert.ErrorContains(t, err, "failed to fetch remote data: timed out")
	})
}

func TestClient_FetchWithoutCredentials(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:0"}, nil, racache.NewFS(afero.NewMemMapFs(), "/"), zap.NewNop())

	_, err := client.Fetch(context.Background(), 1)
	assert.EqualError(t, err, "expected RAPrefs.cfg file, but found none")
}
