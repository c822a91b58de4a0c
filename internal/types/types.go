// Package types defines the data structures shared across the pathtree packages.
package types

import "encoding/xml"

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"

	// SyntaxGlob selects patterns where '*' also matches the path separator.
	SyntaxGlob = "glob"
	// SyntaxPath selects separator-aware patterns where only '**' crosses directories.
	SyntaxPath = "path"

	// PathSeparator delimits the segments of an Entry's FullPath on every platform.
	PathSeparator = "/"
)

// Entry is one filesystem object observed during traversal.
type Entry struct {
	// Name is the final path segment.
	Name string
	// FullPath is the slash-separated path from the traversal root, root segment included.
	FullPath string
	// IsDirectory reports whether the entry's metadata describes a directory.
	IsDirectory bool
}

// TreeOutputNode is the serialisable form of a rendered tree node.
type TreeOutputNode struct {
	XMLName  xml.Name          `json:"-" xml:"node"`
	Name     string            `json:"name" xml:"name"`
	Path     string            `json:"path" xml:"path"`
	Type     string            `json:"type" xml:"type"`
	Children []*TreeOutputNode `json:"children,omitempty" xml:"children>node,omitempty"`
}
