package output_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/temirov/pathtree/internal/output"
	"github.com/temirov/pathtree/internal/tree"
	"github.com/temirov/pathtree/internal/types"
)

// sampleRawExpected is the raw rendering of the tree built by buildSampleTree.
const sampleRawExpected = "root\n" +
	"├── a\n" +
	"│   └── x.txt\n" +
	"├── b\n" +
	"└── c.md\n"

// buildSampleTree inserts entries out of label order to exercise sorting.
func buildSampleTree() *tree.Tree {
	sample := tree.New(types.Entry{Name: "root", FullPath: "root", IsDirectory: true})
	sample.Insert("root/c.md", types.Entry{Name: "c.md", FullPath: "root/c.md"})
	sample.Insert("root/b", types.Entry{Name: "b", FullPath: "root/b", IsDirectory: true})
	sample.Insert("root/a", types.Entry{Name: "a", FullPath: "root/a", IsDirectory: true})
	sample.Insert("root/a/x.txt", types.Entry{Name: "x.txt", FullPath: "root/a/x.txt"})
	return sample
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

// TestRawRendererDrawsSortedTree verifies the treeprint layout and label ordering.
func TestRawRendererDrawsSortedTree(testingHandle *testing.T) {
	var buffer bytes.Buffer
	if renderError := (output.RawRenderer{}).Render(&buffer, buildSampleTree()); renderError != nil {
		testingHandle.Fatalf("Render error: %v", renderError)
	}
	if buffer.String() != sampleRawExpected {
		testingHandle.Fatalf("unexpected raw output:\n%s\nwant:\n%s", buffer.String(), sampleRawExpected)
	}
}

// TestRawRendererEmitsOneLinePerNode verifies that N inserted entries produce N labels.
func TestRawRendererEmitsOneLinePerNode(testingHandle *testing.T) {
	sample := buildSampleTree()
	var buffer bytes.Buffer
	if renderError := (output.RawRenderer{}).Render(&buffer, sample); renderError != nil {
		testingHandle.Fatalf("Render error: %v", renderError)
	}
	lines := strings.Split(strings.TrimRight(buffer.String(), "\n"), "\n")
	if len(lines) != sample.Len() {
		testingHandle.Fatalf("expected %d lines, got %d", sample.Len(), len(lines))
	}
}

// TestRawRendererKeepsChildrenOfNonDirectoryNodes verifies nodes with children render as branches.
func TestRawRendererKeepsChildrenOfNonDirectoryNodes(testingHandle *testing.T) {
	sample := tree.New(types.Entry{Name: "root", FullPath: "root"})
	sample.Insert("root/a", types.Entry{Name: "a", FullPath: "root/a"})
	sample.Insert("root/a/b", types.Entry{Name: "b", FullPath: "root/a/b"})

	var buffer bytes.Buffer
	if renderError := (output.RawRenderer{}).Render(&buffer, sample); renderError != nil {
		testingHandle.Fatalf("Render error: %v", renderError)
	}
	if !strings.Contains(buffer.String(), "└── b") {
		testingHandle.Fatalf("expected nested child in output:\n%s", buffer.String())
	}
}

// TestJSONRendererProducesNestedNodes verifies the JSON structure.
func TestJSONRendererProducesNestedNodes(testingHandle *testing.T) {
	var buffer bytes.Buffer
	if renderError := (output.JSONRenderer{}).Render(&buffer, buildSampleTree()); renderError != nil {
		testingHandle.Fatalf("Render error: %v", renderError)
	}
	var decoded types.TreeOutputNode
	if decodeError := json.Unmarshal(buffer.Bytes(), &decoded); decodeError != nil {
		testingHandle.Fatalf("decode: %v", decodeError)
	}
	if decoded.Name != "root" || decoded.Type != types.NodeTypeDirectory || len(decoded.Children) != 3 {
		testingHandle.Fatalf("unexpected root node: %+v", decoded)
	}
	firstChild := decoded.Children[0]
	if firstChild.Name != "a" || len(firstChild.Children) != 1 || firstChild.Children[0].Path != "root/a/x.txt" {
		testingHandle.Fatalf("unexpected first child: %+v", firstChild)
	}
	if firstChild.Children[0].Type != types.NodeTypeFile {
		testingHandle.Fatalf("expected file type, got %s", firstChild.Children[0].Type)
	}
}

// TestXMLRendererProducesDocument verifies the XML header and nesting.
func TestXMLRendererProducesDocument(testingHandle *testing.T) {
	var buffer bytes.Buffer
	if renderError := (output.XMLRenderer{}).Render(&buffer, buildSampleTree()); renderError != nil {
		testingHandle.Fatalf("Render error: %v", renderError)
	}
	rendered := buffer.String()
	if !strings.HasPrefix(rendered, xml.Header) {
		testingHandle.Fatalf("missing XML header:\n%s", rendered)
	}
	var decoded types.TreeOutputNode
	if decodeError := xml.Unmarshal([]byte(strings.TrimPrefix(rendered, xml.Header)), &decoded); decodeError != nil {
		testingHandle.Fatalf("decode: %v", decodeError)
	}
	if decoded.Name != "root" || len(decoded.Children) != 3 || decoded.Children[0].Children[0].Name != "x.txt" {
		testingHandle.Fatalf("unexpected decoded tree: %+v", decoded)
	}
}

// TestRenderersReportWriteFailures verifies I/O errors propagate.
func TestRenderersReportWriteFailures(testingHandle *testing.T) {
	for _, format := range []string{types.FormatRaw, types.FormatJSON, types.FormatXML} {
		renderer, rendererError := output.NewRenderer(format)
		if rendererError != nil {
			testingHandle.Fatalf("NewRenderer(%s) error: %v", format, rendererError)
		}
		if renderError := renderer.Render(failingWriter{}, buildSampleTree()); renderError == nil {
			testingHandle.Fatalf("expected %s renderer to report write failure", format)
		}
	}
}

// TestNewRendererRejectsUnknownFormat verifies format validation.
func TestNewRendererRejectsUnknownFormat(testingHandle *testing.T) {
	if _, rendererError := output.NewRenderer("yaml"); !errors.Is(rendererError, output.ErrUnsupportedFormat) {
		testingHandle.Fatalf("expected unsupported format error, got %v", rendererError)
	}
	if !output.IsSupportedFormat("JSON") || output.IsSupportedFormat("toml") {
		testingHandle.Fatalf("unexpected IsSupportedFormat results")
	}
}
