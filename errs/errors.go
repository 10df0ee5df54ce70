// Package errs defines the sentinel error values shared across the sweph
// packages.
//
// All errors raised while opening or evaluating an ephemeris file wrap one
// of these sentinels, so callers can classify failures with errors.Is
// without parsing messages:
//
//	pos, err := f.Position(sefile.BodyMars, jd)
//	if errors.Is(err, errs.ErrOutOfRange) {
//	    // date not covered by this file
//	}
package errs

import "errors"

var (
	// ErrInvalidHeader indicates a malformed constant area: a missing CRLF
	// banner terminator, an endianness sentinel that matches neither byte
	// order, a file-length mismatch, or per-body metadata that violates the
	// file invariants.
	ErrInvalidHeader = errors.New("invalid ephemeris file header")

	// ErrUnknownBody indicates a body id that is not present in the file's
	// body table.
	ErrUnknownBody = errors.New("body not present in ephemeris file")

	// ErrOutOfRange indicates a Julian date outside the time window the
	// file carries for the requested body.
	ErrOutOfRange = errors.New("julian date outside ephemeris range")

	// ErrShortRead indicates a read that would run past the end of the
	// file image.
	ErrShortRead = errors.New("unexpected end of ephemeris file")

	// ErrCorruptSegment indicates a segment whose packed coefficient
	// counts exceed the polynomial order declared in the header.
	ErrCorruptSegment = errors.New("corrupt ephemeris segment")

	// ErrUnsupportedCompression indicates an image compressed with a codec
	// this build does not provide.
	ErrUnsupportedCompression = errors.New("unsupported ephemeris compression")
)
