package fifocache

import "github.com/btcsuite/btclog/v2"

// Subsystem defines the logging code for this package.
const Subsystem = "FIFO"

// log is a logger that is initialized with the btclog.Disabled logger.
var log = btclog.Disabled

// DisableLog disables all logging output.
func DisableLog() {
	UseLogger(btclog.Disabled)
}

// UseLogger uses a specified Logger to output package logging info.
//
// UseLogger must not be called concurrently with other cache operations.
func UseLogger(logger btclog.Logger) {
	log = logger
}
