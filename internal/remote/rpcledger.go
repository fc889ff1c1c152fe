package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/bluecarbonlabs/fieldsync/internal/common"
	"github.com/bluecarbonlabs/fieldsync/internal/logging"
)

// rpcErrAlreadyRegistered is the registry's error code for a duplicate
// (external id, content id) registration.
const rpcErrAlreadyRegistered = -32009

// RPCLedger talks JSON-RPC 2.0 to the registry endpoint. One registration
// call associates a content id with an external id under the configured
// program.
type RPCLedger struct {
	url       string
	programID string
	hc        *http.Client
	log       logging.Logger
	nextID    atomic.Int64
}

// NewRPCLedger returns a ledger client for the given endpoint and program.
func NewRPCLedger(url, programID string, timeout time.Duration, log logging.Logger) *RPCLedger {
	return &RPCLedger{
		url:       url,
		programID: programID,
		hc:        &http.Client{Timeout: timeout},
		log:       log,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type registerParams struct {
	ProgramID  string `json:"programId"`
	ExternalID string `json:"externalId"`
	ContentID  string `json:"contentId"`
}

type rpcResponse struct {
	Result *registerResult `json:"result"`
	Error  *rpcError       `json:"error"`
}

type registerResult struct {
	TxID string `json:"txId"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Register submits a registration and returns its receipt. Duplicate
// registrations map to common.ErrConflict; transport failures to
// common.ErrUnreachable; everything else the registry refuses maps to
// common.ErrRejected.
func (l *RPCLedger) Register(ctx context.Context, externalID string, cid ContentID) (*Receipt, error) {
	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      l.nextID.Add(1),
		Method:  "registry.register",
		Params:  registerParams{ProgramID: l.programID, ExternalID: externalID, ContentID: string(cid)},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.url, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http %s", common.ErrRejected, resp.Status)
	}

	var parsed rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", common.ErrRejected, err)
	}

	if parsed.Error != nil {
		if parsed.Error.Code == rpcErrAlreadyRegistered {
			return nil, fmt.Errorf("%w: %s", common.ErrConflict, parsed.Error.Message)
		}
		return nil, fmt.Errorf("%w: rpc error %d: %s", common.ErrRejected, parsed.Error.Code, parsed.Error.Message)
	}
	if parsed.Result == nil {
		return nil, fmt.Errorf("%w: empty result", common.ErrRejected)
	}

	l.log.Debug(ctx, "registration accepted", "external_id", externalID, "tx", parsed.Result.TxID)
	return &Receipt{ExternalID: externalID, ContentID: cid, TxID: parsed.Result.TxID}, nil
}
