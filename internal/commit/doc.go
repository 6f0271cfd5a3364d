// Package commit holds the commit data model and the conventional commit parser.
//
// This package implements:
//   - RawCommit, the immutable record produced by a history source
//   - ParsedFields and ParsedCommit, the structured forms handed downstream
//   - Parse and ParseMessage, which lex `type(scope)!: description` headers,
//     body/footer blocks, breaking-change markers, issue references and
//     co-author trailers
//
// Parsing never fails. Summaries that do not follow the convention are kept
// as plain descriptions and flagged as Degraded so callers can process
// arbitrary history.
package commit
