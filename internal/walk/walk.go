// Package walk enumerates a directory subtree as a flat stream of entries,
// root first, each carrying a slash-separated full path that begins with the
// root's own segment.
package walk

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/temirov/pathtree/internal/types"
)

const (
	warningUnreadablePathFormat = "skipping %s: %v"
	warningMetadataFormat       = "skipping %s: unable to read metadata: %v"
	errorMetadataFormat         = "reading metadata for %s: %v"
)

// MetadataError reports an entry whose metadata could not be read.
type MetadataError struct {
	Path string
	Err  error
}

func (metadataError *MetadataError) Error() string {
	return fmt.Sprintf(errorMetadataFormat, metadataError.Path, metadataError.Err)
}

func (metadataError *MetadataError) Unwrap() error {
	return metadataError.Err
}

// Options configures a traversal.
type Options struct {
	Root string
	// SkipUnreadable skips entries whose metadata cannot be read instead of
	// aborting the traversal.
	SkipUnreadable bool
	// Warn receives diagnostics about skipped paths.
	Warn func(message string)
}

// Stream walks options.Root in lexical pre-order and passes every entry to
// handler. Paths that cannot be listed are reported through Warn and skipped;
// an inaccessible root therefore yields no entries at all. A metadata failure
// aborts with a *MetadataError unless SkipUnreadable is set.
func Stream(options Options, handler func(types.Entry) error) error {
	if handler == nil {
		return errors.New("walk: entry handler is nil")
	}
	warn := options.Warn
	if warn == nil {
		warn = func(string) {}
	}

	cleanRoot := filepath.Clean(options.Root)
	rootName := filepath.Base(cleanRoot)
	rootSegment := RootSegment(cleanRoot)

	return filepath.WalkDir(cleanRoot, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			warn(fmt.Sprintf(warningUnreadablePathFormat, path, walkError))
			if directoryEntry != nil && directoryEntry.IsDir() && path != cleanRoot {
				return filepath.SkipDir
			}
			return nil
		}

		info, infoError := directoryEntry.Info()
		if infoError != nil {
			if !options.SkipUnreadable {
				return &MetadataError{Path: path, Err: infoError}
			}
			warn(fmt.Sprintf(warningMetadataFormat, path, infoError))
			return nil
		}

		entry := types.Entry{
			Name:        directoryEntry.Name(),
			FullPath:    FullPath(rootSegment, cleanRoot, path),
			IsDirectory: info.IsDir(),
		}
		if path == cleanRoot {
			entry.Name = rootName
			entry.FullPath = rootName
		}
		return handler(entry)
	})
}

// StreamFunc produces traversal entries the way Stream does.
type StreamFunc func(options Options, handler func(types.Entry) error) error

// Collect materialises the whole traversal into a slice.
func Collect(options Options) ([]types.Entry, error) {
	return StreamFunc(Stream).Collect(options)
}

// Collect materialises the entries produced by stream into a slice.
func (stream StreamFunc) Collect(options Options) ([]types.Entry, error) {
	var entries []types.Entry
	streamError := stream(options, func(entry types.Entry) error {
		entries = append(entries, entry)
		return nil
	})
	if streamError != nil {
		return nil, streamError
	}
	return entries, nil
}

// RootSegment returns the first full-path segment for a traversal rooted at
// cleanRoot. A filesystem root has an empty segment, so its descendants read
// "/etc" rather than "//etc".
func RootSegment(cleanRoot string) string {
	base := filepath.Base(cleanRoot)
	if base == string(filepath.Separator) || base == types.PathSeparator {
		return ""
	}
	return base
}

// FullPath converts a traversed path into its root-relative full path.
func FullPath(rootSegment string, cleanRoot string, path string) string {
	relativePath, relativeError := filepath.Rel(cleanRoot, path)
	if relativeError != nil || relativePath == "." {
		return rootSegment
	}
	return rootSegment + types.PathSeparator + filepath.ToSlash(relativePath)
}
