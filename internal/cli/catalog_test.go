package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwoodland/CuriousGremlin/internal/catalog"
	"github.com/cwoodland/CuriousGremlin/internal/traversal"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// seedCatalog compiles the test documents into a fresh catalog.
func seedCatalog(t *testing.T) string {
	t.Helper()
	store := filepath.Join(t.TempDir(), "programs.db")
	_, err := executeRoot(t, "compile", "--store", store, "--jobs", "1", filepath.Join("testdata", "documents"))
	require.NoError(t, err)
	return store
}

func TestCatalogList(t *testing.T) {
	store := seedCatalog(t)

	out, err := executeRoot(t, "catalog", "list", "--store", store)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)

	want := []struct{ name, program string }{
		{"age-band", "g.V().has('person').values('age').is(between(25,35))"},
		{"link", "g.V('marko').addE('knows').to(g.V('josh')).property('weight', 0.75)"},
		{"creators", "g.E().has('created').count()"},
		{"people", "g.V().has('person').count()"},
	}
	for i, line := range lines {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 4, line)
		assert.Equal(t, []string{
			string(rune('1' + i)),
			traversal.HashProgram(want[i].program),
			want[i].name,
			want[i].program,
		}, fields)
	}
}

func TestCatalogListJSON(t *testing.T) {
	store := seedCatalog(t)

	out, err := executeRoot(t, "--format", "json", "catalog", "list", "--store", store)
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   []catalog.Entry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 4)
	assert.Equal(t, "people", resp.Data[3].Name)
	assert.Equal(t, filepath.Join("testdata", "documents", "cue"), resp.Data[3].Source)
}

func TestCatalogListEmpty(t *testing.T) {
	store := filepath.Join(t.TempDir(), "programs.db")
	cat, err := catalog.Open(store)
	require.NoError(t, err)
	require.NoError(t, cat.Close())

	out, err := executeRoot(t, "catalog", "list", "--store", store)
	require.NoError(t, err)
	assert.Equal(t, "No programs stored\n", out)
}

func TestCatalogShow(t *testing.T) {
	store := seedCatalog(t)
	hash := traversal.HashProgram("g.E().has('created').count()")

	out, err := executeRoot(t, "catalog", "show", "--store", store, hash)
	require.NoError(t, err)
	assert.Contains(t, out, "Name:    creators\n")
	assert.Contains(t, out, "Hash:    "+hash+"\n")
	assert.Contains(t, out, "Steps:   3\n")
	assert.Contains(t, out, "Kind:    value\n")
	assert.Contains(t, out, "Program: g.E().has('created').count()\n")
}

func TestCatalogShowErrors(t *testing.T) {
	store := seedCatalog(t)

	out, err := executeRoot(t, "catalog", "show", "--store", store, "deadbeef")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]: no program with hash deadbeef")

	missing := filepath.Join(t.TempDir(), "missing.db")
	out, err = executeRoot(t, "catalog", "list", "--store", missing)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "catalog not found")
}

func TestCatalogRequiresStore(t *testing.T) {
	_, err := executeRoot(t, "catalog", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "store" not set`)
}
