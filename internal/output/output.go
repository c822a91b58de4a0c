// Package output renders an assembled tree as raw text, JSON or XML.
package output

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/temirov/pathtree/internal/tree"
	"github.com/temirov/pathtree/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	errorUnsupportedFormat = "%w '%s'"
	errorWriteFormat       = "writing %s output: %w"
	errorEncodeFormat      = "encoding %s output: %w"
)

// ErrUnsupportedFormat is returned for an unknown output format name.
var ErrUnsupportedFormat = errors.New("invalid format value")

// Renderer writes a tree to a writer.
type Renderer interface {
	Render(writer io.Writer, source *tree.Tree) error
}

// NewRenderer returns the renderer for format.
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", types.FormatRaw:
		return RawRenderer{}, nil
	case types.FormatJSON:
		return JSONRenderer{}, nil
	case types.FormatXML:
		return XMLRenderer{}, nil
	default:
		return nil, fmt.Errorf(errorUnsupportedFormat, ErrUnsupportedFormat, format)
	}
}

// IsSupportedFormat reports whether the provided format is recognized.
func IsSupportedFormat(format string) bool {
	_, rendererError := NewRenderer(format)
	return rendererError == nil
}

// RawRenderer prints the tree with box-drawing connectors.
type RawRenderer struct{}

// Render converts the tree into treeprint branches and writes the result.
func (RawRenderer) Render(writer io.Writer, source *tree.Tree) error {
	if source == nil {
		return nil
	}
	rootID := source.Root()
	printable := treeprint.NewWithRoot(source.Node(rootID).Label)
	appendPrintableChildren(printable, source, rootID)
	if _, writeError := writer.Write(printable.Bytes()); writeError != nil {
		return fmt.Errorf(errorWriteFormat, types.FormatRaw, writeError)
	}
	return nil
}

func appendPrintableChildren(branch treeprint.Tree, source *tree.Tree, parentID tree.NodeID) {
	for _, childID := range source.Children(parentID) {
		child := source.Node(childID)
		if child.IsDirectory || len(source.Children(childID)) > 0 {
			appendPrintableChildren(branch.AddBranch(child.Label), source, childID)
			continue
		}
		branch.AddNode(child.Label)
	}
}

// JSONRenderer marshals the tree as indented JSON.
type JSONRenderer struct{}

// Render writes the JSON document followed by a newline.
func (JSONRenderer) Render(writer io.Writer, source *tree.Tree) error {
	if source == nil {
		return nil
	}
	encoded, encodeError := json.MarshalIndent(BuildOutputTree(source), indentPrefix, indentSpacer)
	if encodeError != nil {
		return fmt.Errorf(errorEncodeFormat, types.FormatJSON, encodeError)
	}
	if _, writeError := fmt.Fprintln(writer, string(encoded)); writeError != nil {
		return fmt.Errorf(errorWriteFormat, types.FormatJSON, writeError)
	}
	return nil
}

// XMLRenderer marshals the tree as an indented XML document.
type XMLRenderer struct{}

// Render writes the XML header and document followed by a newline.
func (XMLRenderer) Render(writer io.Writer, source *tree.Tree) error {
	if source == nil {
		return nil
	}
	encoded, encodeError := xml.MarshalIndent(BuildOutputTree(source), indentPrefix, indentSpacer)
	if encodeError != nil {
		return fmt.Errorf(errorEncodeFormat, types.FormatXML, encodeError)
	}
	if _, writeError := fmt.Fprintln(writer, xmlHeader+string(encoded)); writeError != nil {
		return fmt.Errorf(errorWriteFormat, types.FormatXML, writeError)
	}
	return nil
}

// BuildOutputTree converts the tree into serialisable nodes, depth-first with
// children in label order.
func BuildOutputTree(source *tree.Tree) *types.TreeOutputNode {
	return buildOutputNode(source, source.Root())
}

func buildOutputNode(source *tree.Tree, id tree.NodeID) *types.TreeOutputNode {
	node := source.Node(id)
	outputNode := &types.TreeOutputNode{
		Name: node.Label,
		Path: node.FullPath,
		Type: types.NodeTypeFile,
	}
	if node.IsDirectory {
		outputNode.Type = types.NodeTypeDirectory
	}
	for _, childID := range source.Children(id) {
		outputNode.Children = append(outputNode.Children, buildOutputNode(source, childID))
	}
	return outputNode
}
