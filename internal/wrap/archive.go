package wrap

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"time"

	"github.com/klauspost/compress/zip"
)

// InjectArchive rewrites the zip archive at archivePath with files added at its root and
// the SDK tree (when sdk is not nil) added under serverless_sdk/. Entries with the same
// names are replaced; every other entry is kept.
func InjectArchive(archivePath string, files map[string][]byte, sdk fs.FS) error {
	info, err := os.Stat(archivePath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(archivePath)
	if err != nil {
		return err
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}

	added, err := archiveEntries(files, sdk)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for _, f := range reader.File {
		if _, replaced := added[f.Name]; replaced {
			continue
		}
		if err := copyEntry(writer, f); err != nil {
			return fmt.Errorf("copying %s: %w", f.Name, err)
		}
	}

	names := make([]string, 0, len(added))
	for name := range added {
		names = append(names, name)
	}
	sort.Strings(names)

	now := time.Now()
	for _, name := range names {
		header := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: now}
		header.SetMode(0644)
		w, err := writer.CreateHeader(header)
		if err != nil {
			return err
		}
		if _, err := w.Write(added[name]); err != nil {
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}
	return os.WriteFile(archivePath, buf.Bytes(), info.Mode().Perm())
}

// archiveEntries collects the new entries keyed by archive path.
func archiveEntries(files map[string][]byte, sdk fs.FS) (map[string][]byte, error) {
	entries := make(map[string][]byte, len(files))
	for name, content := range files {
		entries[name] = content
	}
	if sdk == nil {
		return entries, nil
	}

	err := fs.WalkDir(sdk, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := fs.ReadFile(sdk, p)
		if err != nil {
			return err
		}
		entries[path.Join(AssetsDir, p)] = content
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading SDK: %w", err)
	}
	return entries, nil
}

func copyEntry(w *zip.Writer, f *zip.File) error {
	header := f.FileHeader
	header.Extra = nil
	dst, err := w.CreateHeader(&header)
	if err != nil {
		return err
	}
	if f.FileInfo().IsDir() {
		return nil
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(dst, src)
	return err
}
