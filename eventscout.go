// Package eventscout extracts structured records of open source conferences,
// competitions and community activities from web pages and files. A language
// model proposes a record, the record is validated against a strict schema and
// the known corpus, and valid records are appended to per-category YAML stores.
//
// This package contains domain types, interfaces and pure domain logic
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., yaml/, openai/,
// goquery/).
package eventscout
