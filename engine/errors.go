package engine

import "errors"

// ErrStoreDisabled is returned by the export operations when no snapshot
// store is configured.
var ErrStoreDisabled = errors.New("snapshot store not configured")
