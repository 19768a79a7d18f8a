package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapverb/internal/engine"
	"github.com/leapstack-labs/leapverb/internal/state"
	"github.com/leapstack-labs/leapverb/internal/testutil"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	testdata := filepath.Join("..", "engine", "testdata")
	eng, err := engine.New(context.Background(), engine.Config{
		GrammarPath: filepath.Join(testdata, "grammar.yaml"),
		WorldDriver: state.DriverSQLite,
		WorldDSN:    ":memory:",
		WorldSeed:   filepath.Join(testdata, "world.yaml"),
		ScriptsDir:  filepath.Join(testdata, "scripts"),
		Logger:      testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })

	srv := httptest.NewServer(NewServer(Config{Engine: eng, Logger: testutil.NewTestLogger(t)}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postParse(t *testing.T, srv *httptest.Server, body string) (*http.Response, ParseResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/v1/parse", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var out ParseResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestParse(t *testing.T) {
	srv := setupServer(t)

	tests := []struct {
		name         string
		body         string
		wantStatus   int
		wantOutput   string
		understood   bool
		wantAttempts int
	}{
		{
			name:       "understood",
			body:       `{"command": "take the small crate"}`,
			wantStatus: http.StatusOK,
			wantOutput: "Taken.",
			understood: true,
		},
		{
			name:         "ambiguous",
			body:         `{"command": "examine crate"}`,
			wantStatus:   http.StatusOK,
			wantOutput:   "I don't understand that.",
			wantAttempts: 1,
		},
		{
			name:       "unknown verb",
			body:       `{"command": "xyzzy"}`,
			wantStatus: http.StatusOK,
			wantOutput: "I don't understand that.",
		},
		{
			name:       "malformed json",
			body:       `{"command":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			body:       `{"cmd": "look"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := postParse(t, srv, tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.understood, out.Understood)
			assert.Equal(t, tt.wantOutput, out.Output)
			assert.Len(t, out.Attempts, tt.wantAttempts)
		})
	}
}

func TestVerbs(t *testing.T) {
	srv := setupServer(t)

	resp, err := http.Get(srv.URL + "/v1/verbs")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var verbs []VerbInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&verbs))
	require.NotEmpty(t, verbs)
	assert.Equal(t, []string{"look", "l"}, verbs[0].Words)
	assert.Equal(t, "look", verbs[0].Rules[0].Action)
}

func TestTranscript(t *testing.T) {
	srv := setupServer(t)
	postParse(t, srv, `{"command": "look"}`)
	postParse(t, srv, `{"command": "dance"}`)

	resp, err := http.Get(srv.URL + "/v1/transcript")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var turns []TurnInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&turns))
	require.Len(t, turns, 2)
	assert.Equal(t, "look", turns[0].Command)
	assert.Equal(t, 2, turns[1].Seq)
	assert.Equal(t, "You dance a little jig.", turns[1].Output)
}

func TestHealthz(t *testing.T) {
	srv := setupServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestParse_ConcurrentTurnsAreSerialized(t *testing.T) {
	srv := setupServer(t)

	const n = 8
	outputs := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(srv.URL+"/v1/parse", "application/json",
				strings.NewReader(`{"command": "take small crate"}`))
			if err != nil {
				t.Error(err)
				return
			}
			defer func() { _ = resp.Body.Close() }()
			var out ParseResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Error(err)
				return
			}
			outputs[i] = out.Output
		}()
	}
	wg.Wait()

	taken := 0
	for _, out := range outputs {
		if out == "Taken." {
			taken++
		} else {
			assert.Equal(t, "You already have the small crate.", out)
		}
	}
	assert.Equal(t, 1, taken, "only one request picks the crate up")
}
