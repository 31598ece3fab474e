package snapshot

import "encoding/binary"

// ===========================================================================
// SNAPSHOT FILE FORMAT
// ===========================================================================
//
// Snapshot File Structure:
// ┌─────────────────────────────────────────────────────────────────────────┐
// │ Magic "MDB1" (4 bytes) │ Version (1 byte)                               │
// ├─────────────────────────────────────────────────────────────────────────┤
// │ Table count (u64)                                                       │
// ├─────────────────────────────────────────────────────────────────────────┤
// │ Table 1: name, key column, schema, records                              │
// ├─────────────────────────────────────────────────────────────────────────┤
// │ ...                                                                     │
// └─────────────────────────────────────────────────────────────────────────┘
//
// Per table:
//   name:       u64 length + UTF-8 bytes
//   key column: u64 length + UTF-8 bytes
//   columns:    u64 count, then per column: u64 length + name, 1-byte tag
//   records:    u64 count, then per record: values in schema order
//
// Value encodings are implied by the column tag:
//   Int (tag 0):    8 bytes little-endian two's complement
//   String (tag 1): u64 length, then raw UTF-8 bytes
//   Bool (tag 2):   1 byte, 0 or 1
//
// All multi-byte integers are little-endian.
//
// ===========================================================================

// ByteOrder is the byte order used for all snapshot fields
var ByteOrder = binary.LittleEndian

// Magic identifies a valid snapshot file
var Magic = [4]byte{'M', 'D', 'B', '1'}

// Version is the current snapshot format version
const Version uint8 = 1

// HeaderSize is magic plus version
const HeaderSize = 5

// Value type tags as written on disk
const (
	TagInt    uint8 = 0
	TagString uint8 = 1
	TagBool   uint8 = 2
)
