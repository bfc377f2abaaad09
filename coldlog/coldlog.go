// ─────────────────────────────────────────────────────────────────────────────
// coldlog — zero-alloc cold-path diagnostic logging
//
// Purpose:
//   - Logs infrequent error/warning paths (pool exhaustion, parse failures,
//     sequence gaps) without introducing heap pressure or pulling a
//     structured-logging dependency into the core data plane.
//   - Used only off the hot path — see SPEC_FULL.md §2.1 for why this one ambient
//     concern stays off zap, unlike every other collaborator in this repo.
//
// Notes:
//   - Avoids fmt.Sprintf; builds the message with direct concatenation and
//     issues one Write to stderr.
//   - Aggressively inlined and nosplit — never invoke from a loop expected
//     to sustain sub-microsecond iteration latency.
// ─────────────────────────────────────────────────────────────────────────────

package coldlog

import "os"

// DropError logs prefix plus err's message (or just prefix if err is nil).
//
//go:nosplit
//go:inline
func DropError(prefix string, err error) {
	if err != nil {
		msg := prefix + ": " + err.Error() + "\n"
		writeLine(msg)
		return
	}
	writeLine(prefix + "\n")
}

// DropMessage logs prefix and message concatenated with a colon separator.
//
//go:nosplit
//go:inline
func DropMessage(prefix, message string) {
	writeLine(prefix + ": " + message + "\n")
}

//go:nosplit
//go:inline
func writeLine(msg string) {
	os.Stderr.WriteString(msg)
}
