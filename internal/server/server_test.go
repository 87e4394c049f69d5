package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/equity-cli/internal/protocol"
)

func newTestServer(t *testing.T) (*httptest.Server, *websocket.Conn) {
	t.Helper()

	config := DefaultConfig()
	config.Simulation.Workers = 1
	s := New(config, log.New(io.Discard))

	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return srv, conn
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSimulateRoundTrip(t *testing.T) {
	_, conn := newTestServer(t)

	seed := int64(42)
	require.NoError(t, conn.WriteJSON(protocol.SimulateRequest{
		Type:       protocol.TypeSimulate,
		Hand1:      "AsAd",
		Hand2:      "KsKd",
		Iterations: 2000,
		Seed:       &seed,
	}))

	var result protocol.SimulateResult
	require.NoError(t, conn.ReadJSON(&result))

	assert.Equal(t, protocol.TypeResult, result.Type)
	assert.Equal(t, []string{"As", "Ad"}, result.Hands[0].Cards)
	assert.Equal(t, 2000, result.Trials)
	assert.Equal(t, 2000, result.Hands[0].Wins+result.Hands[1].Wins+result.Ties)
	// Aces dominate kings preflop.
	assert.Greater(t, result.Hands[0].Equity, 70.0)
}

func TestSimulateDeterministicSeed(t *testing.T) {
	_, conn := newTestServer(t)

	run := func() protocol.SimulateResult {
		seed := int64(7)
		require.NoError(t, conn.WriteJSON(protocol.SimulateRequest{
			Type:       protocol.TypeSimulate,
			Hand1:      "AsKs",
			Hand2:      "QdQc",
			Iterations: 1000,
			Seed:       &seed,
		}))
		var result protocol.SimulateResult
		require.NoError(t, conn.ReadJSON(&result))
		return result
	}

	first := run()
	second := run()
	second.ElapsedMs = first.ElapsedMs
	assert.Equal(t, first, second)
}

func TestSimulateClampsIterations(t *testing.T) {
	_, conn := newTestServer(t)

	require.NoError(t, conn.WriteJSON(protocol.SimulateRequest{
		Type:  protocol.TypeSimulate,
		Hand1: "AsKs",
		Hand2: "QdQc",
		// Zero iterations falls back to the configured default.
	}))

	var result protocol.SimulateResult
	require.NoError(t, conn.ReadJSON(&result))
	assert.Equal(t, DefaultConfig().Simulation.DefaultIterations, result.Trials)
}

func TestSimulateBadRequest(t *testing.T) {
	_, conn := newTestServer(t)

	require.NoError(t, conn.WriteJSON(protocol.SimulateRequest{
		Type:       protocol.TypeSimulate,
		Hand1:      "AsXx",
		Hand2:      "QdQc",
		Iterations: 100,
	}))

	var errMsg protocol.Error
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Equal(t, protocol.TypeError, errMsg.Type)
	assert.Contains(t, errMsg.Message, "hand1")
}

func TestSimulateDuplicateCards(t *testing.T) {
	_, conn := newTestServer(t)

	require.NoError(t, conn.WriteJSON(protocol.SimulateRequest{
		Type:       protocol.TypeSimulate,
		Hand1:      "AsKs",
		Hand2:      "AsQc",
		Iterations: 100,
	}))

	var errMsg protocol.Error
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Equal(t, protocol.TypeError, errMsg.Type)
}

func TestUnknownMessageType(t *testing.T) {
	_, conn := newTestServer(t)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "bogus"}))

	var errMsg protocol.Error
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Equal(t, protocol.TypeError, errMsg.Type)
}
