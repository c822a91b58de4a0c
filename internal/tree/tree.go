// Package tree assembles traversal entries into a hierarchy keyed by path
// segments.
//
// Nodes live in an arena and refer to their children by NodeID, so the tree
// can be walked and extended without shared pointers. The root is created
// from the first traversal entry; every later entry is placed by splitting
// its full path on "/", dropping the root's own segment and descending one
// segment at a time.
package tree

import (
	"sort"
	"strings"

	"github.com/temirov/pathtree/internal/types"
)

// NodeID addresses a node inside a Tree.
type NodeID int

// InsertOutcome describes what Insert did with an entry.
type InsertOutcome int

const (
	// OutcomeInserted means a new child node was attached.
	OutcomeInserted InsertOutcome = iota
	// OutcomeReplaced means an existing child of the same name, and its subtree, was replaced.
	OutcomeReplaced
	// OutcomeOrphaned means an intermediate segment had no node and the entry was dropped.
	OutcomeOrphaned
	// OutcomeRejected means the path had no segment below the root.
	OutcomeRejected
)

var outcomeNames = map[InsertOutcome]string{
	OutcomeInserted: "inserted",
	OutcomeReplaced: "replaced",
	OutcomeOrphaned: "orphaned",
	OutcomeRejected: "rejected",
}

func (outcome InsertOutcome) String() string {
	if name, known := outcomeNames[outcome]; known {
		return name
	}
	return "unknown"
}

// OrphanHandler observes entries dropped because a parent segment was absent.
type OrphanHandler func(fullPath string, missingSegment string)

// Node is one element of the hierarchy.
type Node struct {
	Label       string
	FullPath    string
	IsDirectory bool
	children    map[string]NodeID
}

// Option configures a Tree.
type Option func(*Tree)

// WithOrphanHandler installs a hook that is called for every orphaned entry.
func WithOrphanHandler(handler OrphanHandler) Option {
	return func(tree *Tree) {
		tree.onOrphan = handler
	}
}

// Tree is a rooted hierarchy built from traversal entries.
type Tree struct {
	nodes    []Node
	onOrphan OrphanHandler
}

// New creates a tree whose root represents rootEntry.
func New(rootEntry types.Entry, options ...Option) *Tree {
	tree := &Tree{}
	for _, option := range options {
		option(tree)
	}
	tree.nodes = append(tree.nodes, newNode(rootEntry))
	return tree
}

func newNode(entry types.Entry) Node {
	return Node{
		Label:       entry.Name,
		FullPath:    entry.FullPath,
		IsDirectory: entry.IsDirectory,
		children:    make(map[string]NodeID),
	}
}

// Insert places entry at the position addressed by fullPath. The first
// segment of fullPath names the root and is skipped; every following segment
// but the last must already exist. The new node is keyed by entry.Name, and
// an existing child under that key is replaced.
func (tree *Tree) Insert(fullPath string, entry types.Entry) InsertOutcome {
	segments := strings.Split(fullPath, types.PathSeparator)
	if fullPath == "" || len(segments) < 2 {
		return OutcomeRejected
	}

	parentID := tree.Root()
	for _, segment := range segments[1 : len(segments)-1] {
		childID, found := tree.nodes[parentID].children[segment]
		if !found {
			if tree.onOrphan != nil {
				tree.onOrphan(fullPath, segment)
			}
			return OutcomeOrphaned
		}
		parentID = childID
	}

	outcome := OutcomeInserted
	if _, exists := tree.nodes[parentID].children[entry.Name]; exists {
		outcome = OutcomeReplaced
	}
	tree.nodes = append(tree.nodes, newNode(entry))
	tree.nodes[parentID].children[entry.Name] = NodeID(len(tree.nodes) - 1)
	return outcome
}

// Root returns the identifier of the root node.
func (tree *Tree) Root() NodeID {
	return 0
}

// Node returns the node addressed by id.
func (tree *Tree) Node(id NodeID) Node {
	return tree.nodes[id]
}

// Child returns the child of parent keyed by name.
func (tree *Tree) Child(parent NodeID, name string) (NodeID, bool) {
	childID, found := tree.nodes[parent].children[name]
	return childID, found
}

// Children returns the children of id ordered by label.
func (tree *Tree) Children(id NodeID) []NodeID {
	children := tree.nodes[id].children
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)
	ordered := make([]NodeID, 0, len(names))
	for _, name := range names {
		ordered = append(ordered, children[name])
	}
	return ordered
}

// Walk visits every reachable node depth-first, parents before children and
// siblings in label order. A non-nil error from visit stops the walk.
func (tree *Tree) Walk(visit func(id NodeID, depth int) error) error {
	return tree.walk(tree.Root(), 0, visit)
}

func (tree *Tree) walk(id NodeID, depth int, visit func(id NodeID, depth int) error) error {
	if visitError := visit(id, depth); visitError != nil {
		return visitError
	}
	for _, childID := range tree.Children(id) {
		if walkError := tree.walk(childID, depth+1, visit); walkError != nil {
			return walkError
		}
	}
	return nil
}

// Len returns the number of nodes reachable from the root. Nodes cut off by a
// replacement stay in the arena but are not counted.
func (tree *Tree) Len() int {
	count := 0
	_ = tree.Walk(func(NodeID, int) error {
		count++
		return nil
	})
	return count
}
