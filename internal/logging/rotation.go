package logging

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const logFilePrefix = "chat-sidebar_"

// rotate removes the oldest log files in dir when the number of files exceeds maxFiles.
// Only files named "chat-sidebar_*.log" are considered.
func rotate(dir string, maxFiles int) error {
	if maxFiles <= 0 {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	type logFile struct {
		path string
		mod  int64
	}
	var files []logFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		lf := logFile{path: filepath.Join(dir, name)}
		if info, err := entry.Info(); err == nil {
			lf.mod = info.ModTime().UnixNano()
		}
		files = append(files, lf)
	}
	// The file about to be created counts against the limit.
	excess := len(files) - maxFiles + 1
	if excess <= 0 {
		return nil
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].mod == files[j].mod {
			return files[i].path < files[j].path
		}
		return files[i].mod < files[j].mod
	})
	for _, f := range files[:excess] {
		os.Remove(f.path) // ignore errors
	}
	return nil
}
