// Package remote defines the external collaborators of the sync engine
// (the content-addressed blob store and the ledger registry) plus their
// concrete clients. The sync engine depends only on the interfaces here.
package remote

import "context"

// ContentID is the stable identifier a content store derives from a payload.
type ContentID string

// ContentStore accepts a blob and returns its content identifier.
// Implementations classify failures with common.ErrUnreachable,
// common.ErrRejected and common.ErrTooLarge.
type ContentStore interface {
	Upload(ctx context.Context, payload []byte) (ContentID, error)
}

// Receipt acknowledges a ledger registration.
type Receipt struct {
	ExternalID string
	ContentID  ContentID
	TxID       string
}

// Ledger associates a content identifier with an external identifier on the
// remote registry. Duplicate registration surfaces as common.ErrConflict,
// which callers treat as non-fatal.
type Ledger interface {
	Register(ctx context.Context, externalID string, cid ContentID) (*Receipt, error)
}
