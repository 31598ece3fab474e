package snapshot

import (
	"fmt"

	"github.com/kestreldb/kestrel/internal/engine"
	"github.com/kestreldb/kestrel/internal/value"
)

// Decode reconstructs a database from snapshot bytes. The path is only
// used for error context. On any failure the returned database is nil,
// so callers can keep their prior state intact.
func Decode(path string, data []byte) (*engine.Database, error) {
	r := &reader{path: path, data: data}

	magic, err := r.bytes(4)
	if err != nil {
		return nil, err
	}
	if string(magic) != string(Magic[:]) {
		return nil, r.errAt(0, "bad magic")
	}
	version, err := r.u8()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, r.errAt(4, "unsupported version %d", version)
	}

	db := engine.NewDatabase()

	tableCount, err := r.u64()
	if err != nil {
		return nil, err
	}
	for ti := uint64(0); ti < tableCount; ti++ {
		t, err := r.table(db)
		if err != nil {
			return nil, err
		}
		db.AddTable(t)
	}

	if r.off != int64(len(r.data)) {
		return nil, r.errAt(r.off, "trailing bytes after last table")
	}

	return db, nil
}

func (r *reader) table(db *engine.Database) (*engine.Table, error) {
	nameOff := r.off
	name, err := r.str()
	if err != nil {
		return nil, err
	}
	if _, exists := db.Table(name); exists {
		return nil, r.errAt(nameOff, "table %q appears twice", name)
	}

	key, err := r.str()
	if err != nil {
		return nil, err
	}

	colCount, err := r.u64()
	if err != nil {
		return nil, err
	}
	columns := make([]engine.Column, 0, colCount)
	for ci := uint64(0); ci < colCount; ci++ {
		colName, err := r.str()
		if err != nil {
			return nil, err
		}
		tagOff := r.off
		tag, err := r.u8()
		if err != nil {
			return nil, err
		}
		typ, ok := tagType(tag)
		if !ok {
			return nil, r.errAt(tagOff, "unknown type tag %d", tag)
		}
		for _, c := range columns {
			if c.Name == colName {
				return nil, r.errAt(tagOff, "column %q appears twice in %q", colName, name)
			}
		}
		columns = append(columns, engine.Column{Name: colName, Type: typ})
	}

	keyIdx := -1
	for i, c := range columns {
		if c.Name == key {
			keyIdx = i
		}
	}
	if keyIdx < 0 {
		return nil, r.errAt(nameOff, "key column %q is not in the schema of %q", key, name)
	}
	if columns[keyIdx].Type != value.TypeInt {
		return nil, r.errAt(nameOff, "key column %q of %q is not INT", key, name)
	}

	t := engine.NewTable(name, key, columns)

	recCount, err := r.u64()
	if err != nil {
		return nil, err
	}
	for ri := uint64(0); ri < recCount; ri++ {
		recOff := r.off
		rec := make(engine.Record, len(columns))
		for ci, col := range columns {
			v, err := r.value(col.Type)
			if err != nil {
				return nil, err
			}
			rec[ci] = v
		}
		k := rec[keyIdx].Int()
		if _, dup := t.Get(k); dup {
			return nil, r.errAt(recOff, "duplicate key %d in %q", k, name)
		}
		t.Put(k, rec)
	}

	return t, nil
}

func (r *reader) value(t value.Type) (value.Value, error) {
	switch t {
	case value.TypeInt:
		n, err := r.u64()
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(int64(n)), nil
	case value.TypeString:
		s, err := r.str()
		if err != nil {
			return value.Value{}, err
		}
		return value.Str(s), nil
	default:
		off := r.off
		b, err := r.u8()
		if err != nil {
			return value.Value{}, err
		}
		if b > 1 {
			return value.Value{}, r.errAt(off, "bool byte %d is not 0 or 1", b)
		}
		return value.Bool(b == 1), nil
	}
}

func tagType(tag uint8) (value.Type, bool) {
	switch tag {
	case TagInt:
		return value.TypeInt, true
	case TagString:
		return value.TypeString, true
	case TagBool:
		return value.TypeBool, true
	}
	return 0, false
}

// reader tracks the byte offset so failures can point at the exact
// position in the file.
type reader struct {
	path string
	data []byte
	off  int64
}

func (r *reader) errAt(off int64, format string, args ...any) error {
	return engine.NewDecodeError(r.path, off, fmt.Sprintf(format, args...))
}

func (r *reader) bytes(n int64) ([]byte, error) {
	if r.off+n > int64(len(r.data)) {
		return nil, r.errAt(r.off, "unexpected end of file")
	}
	out := r.data[r.off : r.off+n]
	r.off += n
	return out, nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u64() (uint64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint64(b), nil
}

func (r *reader) str() (string, error) {
	n, err := r.u64()
	if err != nil {
		return "", err
	}
	if n > uint64(len(r.data)) {
		return "", r.errAt(r.off-8, "length %d exceeds file size", n)
	}
	b, err := r.bytes(int64(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
