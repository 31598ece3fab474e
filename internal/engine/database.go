package engine

import (
	"sort"

	"github.com/kestreldb/kestrel/internal/value"
)

// Column is one declared field of a table schema.
type Column struct {
	Name string
	Type value.Type
}

// Record holds one row's values in schema order.
type Record []value.Value

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	copy(out, r)
	return out
}

// Table is a schema plus records keyed by the primary key column.
// Records iterate in insertion order of their keys.
type Table struct {
	name     string
	key      string
	columns  []Column
	records  map[int64]Record
	keyOrder []int64
}

// NewTable assumes the schema was already validated (unique column
// names, key declared and typed Int).
func NewTable(name, key string, columns []Column) *Table {
	return &Table{
		name:    name,
		key:     key,
		columns: columns,
		records: make(map[int64]Record),
	}
}

func (t *Table) Name() string      { return t.name }
func (t *Table) Key() string       { return t.key }
func (t *Table) Columns() []Column { return t.columns }
func (t *Table) Len() int          { return len(t.records) }

// ColumnIndex resolves a column name to its schema position.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.columns {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

// KeyIndex is the schema position of the primary key column.
func (t *Table) KeyIndex() int {
	i, _ := t.ColumnIndex(t.key)
	return i
}

// Get returns the record stored under key.
func (t *Table) Get(key int64) (Record, bool) {
	rec, ok := t.records[key]
	return rec, ok
}

// Put stores a record under key, preserving insertion order for new
// keys. The caller must have checked the key is free.
func (t *Table) Put(key int64, rec Record) {
	if _, ok := t.records[key]; !ok {
		t.keyOrder = append(t.keyOrder, key)
	}
	t.records[key] = rec
}

// Remove deletes the record under key, keeping the order of the rest.
func (t *Table) Remove(key int64) bool {
	if _, ok := t.records[key]; !ok {
		return false
	}
	delete(t.records, key)
	for i, k := range t.keyOrder {
		if k == key {
			t.keyOrder = append(t.keyOrder[:i], t.keyOrder[i+1:]...)
			break
		}
	}
	return true
}

// Records returns all records in insertion order.
func (t *Table) Records() []Record {
	out := make([]Record, 0, len(t.keyOrder))
	for _, k := range t.keyOrder {
		out = append(out, t.records[k])
	}
	return out
}

// Keys returns the primary key values in insertion order.
func (t *Table) Keys() []int64 {
	out := make([]int64, len(t.keyOrder))
	copy(out, t.keyOrder)
	return out
}

// Database maps table names to tables. Iteration follows table
// creation order.
type Database struct {
	tables map[string]*Table
	order  []string
}

func NewDatabase() *Database {
	return &Database{tables: make(map[string]*Table)}
}

func (db *Database) Table(name string) (*Table, bool) {
	t, ok := db.tables[name]
	return t, ok
}

// AddTable registers a table under its name. The caller must have
// checked the name is free.
func (db *Database) AddTable(t *Table) {
	db.tables[t.name] = t
	db.order = append(db.order, t.name)
}

// Tables returns all tables in creation order.
func (db *Database) Tables() []*Table {
	out := make([]*Table, 0, len(db.order))
	for _, name := range db.order {
		out = append(out, db.tables[name])
	}
	return out
}

// TableNames returns the table names sorted, for display.
func (db *Database) TableNames() []string {
	out := make([]string, len(db.order))
	copy(out, db.order)
	sort.Strings(out)
	return out
}

// ReplaceWith swaps this database's entire contents for other's. Used
// by snapshot restore once decoding has fully succeeded.
func (db *Database) ReplaceWith(other *Database) {
	db.tables = other.tables
	db.order = other.order
}

// Equal compares two databases structurally: same tables in the same
// creation order, same schemas, same ordered records.
func (db *Database) Equal(other *Database) bool {
	if len(db.order) != len(other.order) {
		return false
	}
	for i, name := range db.order {
		if other.order[i] != name {
			return false
		}
		a, b := db.tables[name], other.tables[name]
		if a.key != b.key || len(a.columns) != len(b.columns) {
			return false
		}
		for j, col := range a.columns {
			if b.columns[j] != col {
				return false
			}
		}
		if len(a.keyOrder) != len(b.keyOrder) {
			return false
		}
		for j, k := range a.keyOrder {
			if b.keyOrder[j] != k {
				return false
			}
			ra, rb := a.records[k], b.records[k]
			for ci := range ra {
				if !ra[ci].Equal(rb[ci]) {
					return false
				}
			}
		}
	}
	return true
}
