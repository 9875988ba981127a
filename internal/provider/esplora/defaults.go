package esplora

import "time"

const (
	// DefaultBaseURL points at the public Blockstream Esplora instance.
	DefaultBaseURL = "https://blockstream.info/api"

	defaultTimeout = 30 * time.Second

	// chainPageSize is the confirmed-history page size Esplora serves; a
	// shorter page means the history is exhausted.
	chainPageSize = 25
)
