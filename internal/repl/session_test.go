package repl

import (
	"fmt"
	"testing"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/util"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, billy.Filesystem) {
	t.Helper()
	fs := memfs.New()
	return NewSession(fs, nil), fs
}

func writeScript(t *testing.T, fs billy.Filesystem, path, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fs, path, []byte(content), 0o644))
}

func TestExecuteStatement(t *testing.T) {
	s, _ := newTestSession(t)

	res, err := s.ExecuteStatement("CREATE users KEY id FIELDS id: INT, name: STRING;")
	require.NoError(t, err)
	require.False(t, res.IsRows())

	res, err = s.ExecuteStatement(`INSERT id = 1, name = "Alice" INTO users;`)
	require.NoError(t, err)

	res, err = s.ExecuteStatement("SELECT name FROM users;")
	require.NoError(t, err)
	require.True(t, res.IsRows())
	require.Len(t, res.Rows, 1)
	require.Equal(t, "Alice", res.Rows[0][0].Text())
}

func TestExecuteStatementRecordsHistory(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.ExecuteStatement("CREATE t KEY id FIELDS id: INT;")
	require.NoError(t, err)
	_, err = s.ExecuteStatement("INSERT id = 1 INTO t;")
	require.NoError(t, err)

	// Failed statements never reach the history.
	_, err = s.ExecuteStatement("INSERT id = 1 INTO t;")
	require.Error(t, err)

	require.Equal(t, []string{
		"CREATE t KEY id FIELDS id: INT;",
		"INSERT id = 1 INTO t;",
	}, s.History.Statements())
}

func TestReadFromReplaysScript(t *testing.T) {
	s, fs := newTestSession(t)
	writeScript(t, fs, "setup.ksl",
		"CREATE users KEY id FIELDS id: INT, name: STRING;\n"+
			`INSERT id = 1, name = "Alice" INTO users;`+"\n"+
			`INSERT id = 2, name = "Bob" INTO users;`+"\n")

	res, err := s.ExecuteStatement(`READ_FROM "setup.ksl";`)
	require.NoError(t, err)
	require.Contains(t, res.Message, "3 statements")

	tbl, ok := s.DB.Table("users")
	require.True(t, ok)
	require.Equal(t, 2, tbl.Len())

	// Only the READ_FROM line enters the history; replaying it re-runs
	// the script.
	require.Equal(t, []string{`READ_FROM "setup.ksl";`}, s.History.Statements())
}

func TestReadFromNestedScripts(t *testing.T) {
	s, fs := newTestSession(t)
	writeScript(t, fs, "outer.ksl",
		"CREATE t KEY id FIELDS id: INT;\n"+`READ_FROM "inner.ksl";`+"\n")
	writeScript(t, fs, "inner.ksl", "INSERT id = 7 INTO t;\n")

	_, err := s.ExecuteStatement(`READ_FROM "outer.ksl";`)
	require.NoError(t, err)

	tbl, _ := s.DB.Table("t")
	_, ok := tbl.Get(7)
	require.True(t, ok)
}

func TestReadFromDepthCap(t *testing.T) {
	s, fs := newTestSession(t)
	writeScript(t, fs, "loop.ksl", `READ_FROM "loop.ksl";`+"\n")

	_, err := s.ExecuteStatement(`READ_FROM "loop.ksl";`)
	require.Error(t, err)
	require.Contains(t, err.Error(), fmt.Sprintf("%d", MaxScriptDepth))
}

func TestReadFromAbortsOnFirstFailure(t *testing.T) {
	s, fs := newTestSession(t)
	writeScript(t, fs, "bad.ksl",
		"CREATE t KEY id FIELDS id: INT;\n"+
			"INSERT id = 1 INTO t;\n"+
			"INSERT id = 1 INTO t;\n"+
			"INSERT id = 2 INTO t;\n")

	_, err := s.ExecuteStatement(`READ_FROM "bad.ksl";`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "statement 3")

	// Statements before the failure stay applied.
	tbl, ok := s.DB.Table("t")
	require.True(t, ok)
	require.Equal(t, 1, tbl.Len())
}

func TestReadFromMissingScript(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.ExecuteStatement(`READ_FROM "missing.ksl";`)
	require.Error(t, err)
	require.Empty(t, s.History.Statements())
}

func TestSaveAsAfterReadFrom(t *testing.T) {
	s, fs := newTestSession(t)
	writeScript(t, fs, "setup.ksl", "CREATE t KEY id FIELDS id: INT;\n")

	_, err := s.ExecuteStatement(`READ_FROM "setup.ksl";`)
	require.NoError(t, err)
	_, err = s.ExecuteStatement(`SAVE_AS "session.ksl";`)
	require.NoError(t, err)

	data, err := util.ReadFile(fs, "session.ksl")
	require.NoError(t, err)
	require.Equal(t, `READ_FROM "setup.ksl";`+"\n", string(data))
}

func TestScriptWithoutTrailingSemicolon(t *testing.T) {
	s, fs := newTestSession(t)
	writeScript(t, fs, "tail.ksl", "CREATE t KEY id FIELDS id: INT;\nINSERT id = 1 INTO t")

	res, err := s.ExecuteStatement(`READ_FROM "tail.ksl";`)
	require.NoError(t, err)
	require.Contains(t, res.Message, "2 statements")

	tbl, _ := s.DB.Table("t")
	require.Equal(t, 1, tbl.Len())
}
