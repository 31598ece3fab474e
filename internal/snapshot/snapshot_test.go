package snapshot

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/kestreldb/kestrel/internal/engine"
	"github.com/kestreldb/kestrel/internal/value"
)

func sampleDatabase(t *testing.T) *engine.Database {
	t.Helper()
	db := engine.NewDatabase()

	users := engine.NewTable("users", "id", []engine.Column{
		{Name: "id", Type: value.TypeInt},
		{Name: "name", Type: value.TypeString},
		{Name: "active", Type: value.TypeBool},
	})
	users.Put(2, engine.Record{value.Int(2), value.Str("Bob"), value.Bool(false)})
	users.Put(1, engine.Record{value.Int(1), value.Str("Alice"), value.Bool(true)})
	db.AddTable(users)

	scores := engine.NewTable("scores", "id", []engine.Column{
		{Name: "id", Type: value.TypeInt},
		{Name: "points", Type: value.TypeInt},
	})
	scores.Put(1, engine.Record{value.Int(1), value.Int(-50)})
	db.AddTable(scores)

	return db
}

func assertDecodeError(t *testing.T, err error) *engine.Error {
	t.Helper()
	var e *engine.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *engine.Error, got %T: %v", err, err)
	}
	assert.Equal(t, e.Code, engine.DecodeError)
	return e
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	db := sampleDatabase(t)

	data := Encode(db)
	got, err := Decode("snap.bin", data)
	assert.NilError(t, err)
	assert.Assert(t, db.Equal(got))

	// Insertion order survives the round trip.
	users, _ := got.Table("users")
	assert.DeepEqual(t, users.Keys(), []int64{2, 1})
}

func TestEncodeEmptyDatabase(t *testing.T) {
	db := engine.NewDatabase()
	data := Encode(db)

	// magic + version + zero table count
	assert.Equal(t, len(data), HeaderSize+8)

	got, err := Decode("empty.bin", data)
	assert.NilError(t, err)
	assert.Assert(t, db.Equal(got))
}

func TestEncodeIsDeterministic(t *testing.T) {
	db := sampleDatabase(t)
	a := Encode(db)
	b := Encode(db)
	assert.DeepEqual(t, a, b)
}

func TestDecodeBadMagic(t *testing.T) {
	data := Encode(sampleDatabase(t))
	data[0] = 'X'

	_, err := Decode("snap.bin", data)
	e := assertDecodeError(t, err)
	assert.Equal(t, e.Offset, int64(0))
	assert.Equal(t, e.Path, "snap.bin")
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	data := Encode(sampleDatabase(t))
	data[4] = 99

	_, err := Decode("snap.bin", data)
	e := assertDecodeError(t, err)
	assert.Equal(t, e.Offset, int64(4))
}

func TestDecodeTruncated(t *testing.T) {
	data := Encode(sampleDatabase(t))

	for _, cut := range []int{3, HeaderSize, HeaderSize + 4, len(data) / 2, len(data) - 1} {
		_, err := Decode("snap.bin", data[:cut])
		assertDecodeError(t, err)
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	data := Encode(sampleDatabase(t))
	data = append(data, 0xFF)

	_, err := Decode("snap.bin", data)
	e := assertDecodeError(t, err)
	assert.Equal(t, e.Offset, int64(len(data)-1))
}

func TestDecodeOversizedStringLength(t *testing.T) {
	data := Encode(sampleDatabase(t))
	// First table-name length sits right after the table count.
	off := HeaderSize + 8
	ByteOrder.PutUint64(data[off:off+8], ^uint64(0))

	_, err := Decode("snap.bin", data)
	assertDecodeError(t, err)
}

func TestDecodeUnknownTypeTag(t *testing.T) {
	db := engine.NewDatabase()
	tbl := engine.NewTable("t", "id", []engine.Column{{Name: "id", Type: value.TypeInt}})
	db.AddTable(tbl)
	data := Encode(db)

	// Layout for one table "t" keyed by "id" with one column:
	// header, table count, name "t", key "id", column count,
	// column name "id", then the tag byte.
	off := HeaderSize + 8 + (8 + 1) + (8 + 2) + 8 + (8 + 2)
	data[off] = 7

	_, err := Decode("snap.bin", data)
	e := assertDecodeError(t, err)
	assert.Equal(t, e.Offset, int64(off))
}

func TestDecodeInvalidBoolByte(t *testing.T) {
	db := engine.NewDatabase()
	tbl := engine.NewTable("t", "id", []engine.Column{
		{Name: "id", Type: value.TypeInt},
		{Name: "ok", Type: value.TypeBool},
	})
	tbl.Put(1, engine.Record{value.Int(1), value.Bool(true)})
	db.AddTable(tbl)
	data := Encode(db)

	// The bool payload is the last byte of the file.
	data[len(data)-1] = 2

	_, err := Decode("snap.bin", data)
	assertDecodeError(t, err)
}

func TestDecodeDuplicateKey(t *testing.T) {
	db := engine.NewDatabase()
	tbl := engine.NewTable("t", "id", []engine.Column{{Name: "id", Type: value.TypeInt}})
	tbl.Put(1, engine.Record{value.Int(1)})
	tbl.Put(2, engine.Record{value.Int(2)})
	db.AddTable(tbl)
	data := Encode(db)

	// Rewrite the second record's key to collide with the first.
	off := len(data) - 8
	ByteOrder.PutUint64(data[off:], 1)

	_, err := Decode("snap.bin", data)
	assertDecodeError(t, err)
}

func TestDecodeNegativeInt(t *testing.T) {
	db := engine.NewDatabase()
	tbl := engine.NewTable("t", "id", []engine.Column{
		{Name: "id", Type: value.TypeInt},
		{Name: "delta", Type: value.TypeInt},
	})
	tbl.Put(1, engine.Record{value.Int(1), value.Int(-9223372036854775808)})
	db.AddTable(tbl)

	got, err := Decode("snap.bin", Encode(db))
	assert.NilError(t, err)
	rec, _ := mustTable(t, got, "t").Get(1)
	assert.Equal(t, rec[1].Int(), int64(-9223372036854775808))
}

func mustTable(t *testing.T, db *engine.Database, name string) *engine.Table {
	t.Helper()
	tbl, ok := db.Table(name)
	if !ok {
		t.Fatalf("table %q missing after decode", name)
	}
	return tbl
}
