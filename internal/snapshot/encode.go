package snapshot

import (
	"bytes"

	"github.com/kestreldb/kestrel/internal/engine"
	"github.com/kestreldb/kestrel/internal/value"
)

// Encode serializes the whole database. The output is deterministic:
// tables in creation order, records in insertion order.
func Encode(db *engine.Database) []byte {
	var buf bytes.Buffer

	buf.Write(Magic[:])
	buf.WriteByte(Version)

	tables := db.Tables()
	writeU64(&buf, uint64(len(tables)))

	for _, t := range tables {
		writeString(&buf, t.Name())
		writeString(&buf, t.Key())

		cols := t.Columns()
		writeU64(&buf, uint64(len(cols)))
		for _, col := range cols {
			writeString(&buf, col.Name)
			buf.WriteByte(typeTag(col.Type))
		}

		recs := t.Records()
		writeU64(&buf, uint64(len(recs)))
		for _, rec := range recs {
			for _, v := range rec {
				writeValue(&buf, v)
			}
		}
	}

	return buf.Bytes()
}

func typeTag(t value.Type) uint8 {
	switch t {
	case value.TypeInt:
		return TagInt
	case value.TypeString:
		return TagString
	default:
		return TagBool
	}
}

func writeU64(buf *bytes.Buffer, n uint64) {
	var b [8]byte
	ByteOrder.PutUint64(b[:], n)
	buf.Write(b[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeU64(buf, uint64(len(s)))
	buf.WriteString(s)
}

func writeValue(buf *bytes.Buffer, v value.Value) {
	switch v.Type() {
	case value.TypeInt:
		var b [8]byte
		ByteOrder.PutUint64(b[:], uint64(v.Int()))
		buf.Write(b[:])
	case value.TypeString:
		writeString(buf, v.Text())
	default:
		if v.Bool() {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	}
}
