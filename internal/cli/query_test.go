package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinedex/cinedex/internal/query"
)

func writeDataset(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	data := "title,genres,release_date,vote_average\n" +
		"Heat,\"[{\"\"name\"\": \"\"Crime\"\"}]\",1995-12-15,8.2\n" +
		"Amelie,\"[{\"\"name\"\": \"\"Comedy\"\"}]\",2001-04-25,7.9\n" +
		"The Grand Budapest Hotel,\"[{\"\"name\"\": \"\"Comedy\"\"}]\",2014-03-28,8.1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movies_chunk_001.csv"), []byte(data), 0o644))
	return dir
}

func runCLI(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return out, cmd.Execute()
}

func TestQueryCommand_JSONOutput(t *testing.T) {
	dir := writeDataset(t)

	out, err := runCLI(t,
		"query", "--data", dir, "--format", "json",
		"--genres", "Comedy", "--sort", "year", "--order", "asc")
	require.NoError(t, err)

	var res query.PagedResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Equal(t, 2, res.Total)
	assert.Equal(t, "Amelie", res.Items[0].Title)
	assert.Equal(t, "The Grand Budapest Hotel", res.Items[1].Title)
}

func TestQueryCommand_TextOutput(t *testing.T) {
	dir := writeDataset(t)

	out, err := runCLI(t, "query", "--data", dir, "--search", "heat")
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Heat")
	assert.Contains(t, out.String(), "1 match(es)")
}

func TestQueryCommand_MissingDatasetFails(t *testing.T) {
	_, err := runCLI(t, "query", "--data", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetCommand(t *testing.T) {
	dir := writeDataset(t)

	out, err := runCLI(t, "get", "1", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Heat")

	_, err = runCLI(t, "get", "99", "--data", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestStatsCommand(t *testing.T) {
	dir := writeDataset(t)

	out, err := runCLI(t, "stats", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "movies:     3")
}

func TestChunkCommand_SplitsAndQueries(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "movies.csv")
	data := "title,overview\nA,first\nB,second\nC,third\n"
	require.NoError(t, os.WriteFile(input, []byte(data), 0o644))

	outDir := filepath.Join(dir, "chunks")
	out, err := runCLI(t, "chunk", "--input", input, "--size", "2", "--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "wrote 2 chunk(s), 3 row(s)")

	// The split output is itself a loadable dataset.
	statsOut, err := runCLI(t, "stats", "--data", outDir)
	require.NoError(t, err)
	assert.Contains(t, statsOut.String(), "movies:     3")
}
