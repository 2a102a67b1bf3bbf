package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListBackups(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "erp.db")
	require.NoError(t, os.WriteFile(dbFile, []byte("sqlite payload"), 0o644))

	backupDir := filepath.Join(dir, "backups")
	info, err := CreateBackup(dbFile, backupDir)
	require.NoError(t, err)
	assert.Contains(t, info.FileName, "erp-backup-")
	assert.Equal(t, int64(len("sqlite payload")), info.Size)

	copied, err := os.ReadFile(filepath.Join(backupDir, info.FileName))
	require.NoError(t, err)
	assert.Equal(t, "sqlite payload", string(copied))

	backups, err := ListBackups(backupDir)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, info.FileName, backups[0].FileName)
}

func TestCreateBackupTrimsOldFiles(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "erp.db")
	require.NoError(t, os.WriteFile(dbFile, []byte("payload"), 0o644))

	backupDir := filepath.Join(dir, "backups")
	require.NoError(t, os.MkdirAll(backupDir, 0o755))
	for i := 0; i < maxBackups; i++ {
		name := filepath.Join(backupDir, fmt.Sprintf("erp-backup-2020-01-%02dT00-00-00.db", i+1))
		require.NoError(t, os.WriteFile(name, []byte("old"), 0o644))
		stale := time.Date(2020, 1, i+1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, os.Chtimes(name, stale, stale))
	}

	_, err := CreateBackup(dbFile, backupDir)
	require.NoError(t, err)

	backups, err := ListBackups(backupDir)
	require.NoError(t, err)
	require.Len(t, backups, maxBackups)
	// The oldest file is the one that got dropped.
	for _, b := range backups {
		assert.NotEqual(t, "erp-backup-2020-01-01T00-00-00.db", b.FileName)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	_, err := CreateBackup(filepath.Join(dir, "missing.db"), filepath.Join(dir, "backups"))
	assert.Error(t, err)
}

func TestListBackupsMissingDirIsEmpty(t *testing.T) {
	backups, err := ListBackups(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, backups)
}
