// log.go wires the package's diagnostic logging. The engine logs sparingly
// and only at Debug level — the end-of-search summary, lookup-table
// initialization, FEN rejections — never anything on the UCI stdout itself,
// which uciloop owns.

package engine

import "github.com/op/go-logging"

var log = logging.MustGetLogger("engine")

// SetLogBackend lets a caller (cmd/uci, tests) install its own go-logging
// backend instead of the library default (every level, written to stderr).
func SetLogBackend(backend logging.Backend) {
	logging.SetBackend(backend)
}
