// Package common defines the sentinel errors shared across fieldsync
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotInitialized = errors.New("local store not initialized")
	ErrStorage        = errors.New("storage failure")
	ErrNotFound       = errors.New("not found")

	// Sync-level errors.
	ErrOffline       = errors.New("device is offline")
	ErrNothingSynced = errors.New("sync pass failed for every record")
	ErrUpload        = errors.New("upload failed")
	ErrRegistration  = errors.New("ledger registration failed")

	// Remote-call errors.
	ErrUnreachable = errors.New("remote endpoint unreachable")
	ErrRejected    = errors.New("request rejected by remote")
	ErrTooLarge    = errors.New("payload exceeds size limit")
	ErrConflict    = errors.New("already registered")
)
