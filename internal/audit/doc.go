// Package audit provides a local operation journal for the password
// store.
//
// Every mutating operation (insert, generate, remove, move, copy,
// scope changes) can be recorded in a journal inside the store. Unlike
// git history, the journal never contains secret content, so it is safe
// to inspect and grep even on machines without the decryption keys.
//
// # Journal Format
//
// The journal is stored as JSON Lines (one JSON object per line) at:
//
//	.passtree/journal.jsonl
//
// The leading dot keeps it out of listings and searches, which skip
// hidden entries.
//
// # Failure Handling
//
// Journal writes are best-effort. If a write fails (permissions, disk
// full), the operation continues without error. Store operations should
// never fail just because journaling failed.
//
// # Reading the Journal
//
// Use ReadEntries to parse the journal for display. Malformed entries
// are silently skipped to handle partial writes.
package audit
