package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/implicitlycorrect/graft/internal/ledger"
)

func seedLedger(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graft.db")

	l, err := ledger.Open(path)
	require.NoError(t, err)
	defer l.Close()

	for i := 0; i < n; i++ {
		op := ledger.NewOperation("Source", "Target", i+1, i, "fingerprint0123456789")
		require.NoError(t, l.WriteOperation(context.Background(), op))
	}
	return path
}

func TestHistoryListsOperations(t *testing.T) {
	db := seedLedger(t, 2)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--ledger", db})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Source -> Target")
	assert.Contains(t, output, "types=1 members=0")
	assert.Contains(t, output, "types=2 members=1")
	assert.Contains(t, output, "fingerprint0") // hash abbreviated to 12 chars
	assert.NotContains(t, output, "fingerprint0123456789")
}

func TestHistoryJSON(t *testing.T) {
	db := seedLedger(t, 3)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--ledger", db})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Status string             `json:"status"`
		Data   []ledger.Operation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, int64(1), resp.Data[0].Seq)
	assert.Equal(t, int64(3), resp.Data[2].Seq)
}

func TestHistoryLimit(t *testing.T) {
	db := seedLedger(t, 5)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--ledger", db, "--limit", "2"})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp struct {
		Data []ledger.Operation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestHistoryEmptyLedger(t *testing.T) {
	db := seedLedger(t, 0)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--ledger", db})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "no operations recorded")
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "abc", shortHash("abc"))
	assert.Equal(t, "123456789012", shortHash("1234567890123456"))
}
