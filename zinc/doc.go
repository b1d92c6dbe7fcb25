// Package zinc implements a fast-path decoder for Zinc, the line-oriented
// grid format used for Project Haystack building-automation data.
//
// A Zinc grid looks like:
//
//	ver:"3.0" site dis:"Main Campus"
//	id, dis, area unit:"ft²", geoCoord
//	@p:site1 "HQ", 12_000ft², C(37.55,-122.31)
//	@p:site2 "Lab", 4500ft², N
//
// Line one carries the version and grid metadata, line two the column
// specs (name plus optional metadata tags), and every following non-blank
// line a comma-separated row aligned to the columns.
//
// # Two Strategies
//
// Parsing goes through a Parser, which holds a FallbackParser: the complete
// grammar-driven parser for nested grids, lists, dicts and every escape.
// The Parser first tries the fast path:
//
//   - Eligibility guard: cheap scans that reject anything outside the
//     supported subset (nested grids, dicts, lists in the header, escaped
//     backticks, unquoted bare words, offset+zone timestamps in metadata)
//   - Grid assembler: a line state machine over a quote/uri/paren aware
//     field splitter, a tag-list parser and a regex driven scalar decoder
//
// Any rejection or malformed token discards the fast-path work and the whole
// input goes to the fallback. Only fallback errors reach the caller, so the
// fast path never changes what ParseGrid returns, only how quickly.
//
// # Data Model
//
// Scalars: Null, Marker, Remove, NA, Bool, Number (with unit), Str, URI,
// Bin, XStr, Coord, Ref, Date, Time, DateTime
// Containers: Dict (ordered tag map), Grid (version, meta, columns, rows)
//
// # Concurrency
//
// Decoding reads no process-wide mutable state. A Parser may be shared by
// any number of goroutines.
package zinc
