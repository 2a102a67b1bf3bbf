package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// BackupInfo describes one backup file on disk.
type BackupInfo struct {
	FileName  string    `json:"file_name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateBackup copies the SQLite database file into backupDir under a
// timestamped name and returns the resulting file's details.
func CreateBackup(dbPath, backupDir string) (*BackupInfo, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("erp-backup-%s.db", time.Now().Format("2006-01-02T15-04-05"))
	dst := filepath.Join(backupDir, name)

	src, err := os.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return nil, err
	}

	info, err := out.Stat()
	if err != nil {
		return nil, err
	}

	if err := trimOldBackups(backupDir, maxBackups); err != nil {
		return nil, err
	}

	return &BackupInfo{
		FileName:  name,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

// maxBackups bounds how many backup files are kept on disk.
const maxBackups = 10

// trimOldBackups deletes the oldest backups beyond the keep limit.
func trimOldBackups(backupDir string, keep int) error {
	backups, err := ListBackups(backupDir)
	if err != nil {
		return err
	}
	for _, old := range backups[min(keep, len(backups)):] {
		if err := os.Remove(filepath.Join(backupDir, old.FileName)); err != nil {
			return err
		}
	}
	return nil
}

// ListBackups returns the backups in backupDir, newest first. A missing
// directory just means no backups yet.
func ListBackups(backupDir string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, err
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "erp-backup-") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			FileName:  entry.Name(),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}
