// Package repository defines data access for the Asterisk internal database.
//
// Asterisk keeps per-device settings such as emergency_cid in astdb, a
// key/value store persisted as SQLite (astdb.sqlite3, table astdb with
// key and value columns). Keys are slash-separated paths:
//
//	/DEVICE/814/emergency_cid -> 713652565
//
// # SQLite Implementation
//
// The sqlite subpackage opens astdb.sqlite3 read-only, so the audit can run
// against a copy of the file or alongside a live switch without taking
// write locks.
package repository
