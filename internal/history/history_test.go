package history

import "testing"

func TestRecordKeepsOrder(t *testing.T) {
	log := New()
	log.Record("CREATE t KEY id FIELDS id: INT;")
	log.Record(`INSERT id = 1 INTO t;`)
	log.Record("DELETE 1 FROM t;")

	if log.Len() != 3 {
		t.Fatalf("Len = %d, want 3", log.Len())
	}

	want := []string{
		"CREATE t KEY id FIELDS id: INT;",
		`INSERT id = 1 INTO t;`,
		"DELETE 1 FROM t;",
	}
	got := log.Statements()
	for i, s := range want {
		if got[i] != s {
			t.Fatalf("Statements()[%d] = %q, want %q", i, got[i], s)
		}
	}
}

func TestEntriesHaveDistinctIDs(t *testing.T) {
	log := New()
	a := log.Record("first;")
	b := log.Record("second;")
	if a.ID == b.ID {
		t.Fatal("entries should carry distinct ids")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	log := New()
	log.Record("first;")

	entries := log.Entries()
	entries[0].Text = "mutated"

	if log.Statements()[0] != "first;" {
		t.Fatal("mutating the returned slice must not affect the log")
	}
}
