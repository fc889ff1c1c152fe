package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bluecarbonlabs/fieldsync/internal/common"
	"github.com/bluecarbonlabs/fieldsync/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRPCLedger_Register_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "registry.register", req.Method)

		params, _ := json.Marshal(req.Params)
		var p registerParams
		require.NoError(t, json.Unmarshal(params, &p))
		assert.Equal(t, "prog-1", p.ProgramID)
		assert.Equal(t, "project-9", p.ExternalID)
		assert.Equal(t, "abc123", p.ContentID)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0", "id": req.ID,
			"result": map[string]any{"txId": "tx-77"},
		})
	}))
	defer srv.Close()

	l := NewRPCLedger(srv.URL, "prog-1", time.Second, logging.Nop())
	rcpt, err := l.Register(context.Background(), "project-9", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "tx-77", rcpt.TxID)
	assert.Equal(t, ContentID("abc123"), rcpt.ContentID)
}

func TestRPCLedger_Register_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0", "id": 1,
			"error": map[string]any{"code": -32009, "message": "already registered"},
		})
	}))
	defer srv.Close()

	l := NewRPCLedger(srv.URL, "prog-1", time.Second, logging.Nop())
	_, err := l.Register(context.Background(), "project-9", "abc123")
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestRPCLedger_Register_RPCErrorIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0", "id": 1,
			"error": map[string]any{"code": -32602, "message": "invalid params"},
		})
	}))
	defer srv.Close()

	l := NewRPCLedger(srv.URL, "prog-1", time.Second, logging.Nop())
	_, err := l.Register(context.Background(), "project-9", "abc123")
	require.ErrorIs(t, err, common.ErrRejected)
	require.NotErrorIs(t, err, common.ErrConflict)
}

func TestRPCLedger_Register_HTTPErrorIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	l := NewRPCLedger(srv.URL, "prog-1", time.Second, logging.Nop())
	_, err := l.Register(context.Background(), "project-9", "abc123")
	require.ErrorIs(t, err, common.ErrRejected)
}

func TestRPCLedger_Register_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	l := NewRPCLedger(srv.URL, "prog-1", time.Second, logging.Nop())
	_, err := l.Register(context.Background(), "project-9", "abc123")
	require.ErrorIs(t, err, common.ErrUnreachable)
}
