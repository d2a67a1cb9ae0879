package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/brokerdesk/internal/client/workflow"
	"github.com/dmitrijs2005/brokerdesk/internal/filex"
)

// readAttachment loads the file at path for upload. Oversized files are
// refused before they are read.
func readAttachment(path string) (string, []byte, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil, usagef("a file path is required")
	}
	fi, err := os.Stat(path)
	if err != nil {
		return "", nil, usagef("cannot read %s: %v", path, err)
	}
	if fi.IsDir() {
		return "", nil, usagef("%s is a directory", path)
	}
	if fi.Size() > workflow.MaxDocumentSize {
		return "", nil, usagef("%s is larger than %d bytes", path, workflow.MaxDocumentSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	return filepath.Base(path), content, nil
}

// saveDownload writes content as dir/name, creating dir, and returns the
// absolute path.
func saveDownload(dir, name string, content []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	path, err := filex.EnsureParentDir(filepath.Join(dir, filepath.Base(name)))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
