package tree_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pathtree/internal/tree"
	"github.com/temirov/pathtree/internal/types"
)

func directoryEntry(fullPath string, name string) types.Entry {
	return types.Entry{Name: name, FullPath: fullPath, IsDirectory: true}
}

func fileEntry(fullPath string, name string) types.Entry {
	return types.Entry{Name: name, FullPath: fullPath}
}

func labelsInWalkOrder(t *testing.T, built *tree.Tree) []string {
	t.Helper()
	var labels []string
	require.NoError(t, built.Walk(func(id tree.NodeID, depth int) error {
		labels = append(labels, built.Node(id).Label)
		return nil
	}))
	return labels
}

func TestInsertPlacesEveryEntryBySegments(t *testing.T) {
	entries := []types.Entry{
		directoryEntry("root", "root"),
		directoryEntry("root/a", "a"),
		fileEntry("root/a/x.txt", "x.txt"),
		directoryEntry("root/b", "b"),
		fileEntry("root/b/y.txt", "y.txt"),
		fileEntry("root/z.txt", "z.txt"),
	}

	built := tree.New(entries[0])
	for _, entry := range entries[1:] {
		require.Equal(t, tree.OutcomeInserted, built.Insert(entry.FullPath, entry))
	}

	require.Equal(t, len(entries), built.Len())
	require.Equal(t, "root", built.Node(built.Root()).Label)
	require.Equal(t, []string{"root", "a", "x.txt", "b", "y.txt", "z.txt"}, labelsInWalkOrder(t, built))

	aID, found := built.Child(built.Root(), "a")
	require.True(t, found)
	xID, found := built.Child(aID, "x.txt")
	require.True(t, found)
	require.Equal(t, "root/a/x.txt", built.Node(xID).FullPath)
	require.False(t, built.Node(xID).IsDirectory)
}

func TestInsertDropsEntryWhoseParentIsMissing(t *testing.T) {
	type orphan struct {
		path    string
		missing string
	}
	var reported []orphan
	built := tree.New(directoryEntry("root", "root"), tree.WithOrphanHandler(func(fullPath string, missingSegment string) {
		reported = append(reported, orphan{path: fullPath, missing: missingSegment})
	}))

	outcome := built.Insert("root/a/b/c.txt", fileEntry("root/a/b/c.txt", "c.txt"))

	require.Equal(t, tree.OutcomeOrphaned, outcome)
	require.Equal(t, 1, built.Len())
	require.Equal(t, []orphan{{path: "root/a/b/c.txt", missing: "a"}}, reported)
}

func TestInsertProcessedBeforeParentStaysDropped(t *testing.T) {
	built := tree.New(directoryEntry("root", "root"))

	require.Equal(t, tree.OutcomeOrphaned, built.Insert("root/a/x.txt", fileEntry("root/a/x.txt", "x.txt")))
	require.Equal(t, tree.OutcomeInserted, built.Insert("root/a", directoryEntry("root/a", "a")))

	aID, found := built.Child(built.Root(), "a")
	require.True(t, found)
	require.Empty(t, built.Children(aID))
}

func TestInsertDuplicateNameReplacesSubtree(t *testing.T) {
	built := tree.New(directoryEntry("root", "root"))
	require.Equal(t, tree.OutcomeInserted, built.Insert("root/a", directoryEntry("root/a", "a")))
	require.Equal(t, tree.OutcomeInserted, built.Insert("root/a/old.txt", fileEntry("root/a/old.txt", "old.txt")))

	outcome := built.Insert("root/a", directoryEntry("root/a", "a"))

	require.Equal(t, tree.OutcomeReplaced, outcome)
	require.Len(t, built.Children(built.Root()), 1)
	aID, _ := built.Child(built.Root(), "a")
	_, stillReachable := built.Child(aID, "old.txt")
	require.False(t, stillReachable)
	require.Equal(t, 2, built.Len())
}

func TestInsertRejectsPathsWithoutChildSegment(t *testing.T) {
	built := tree.New(directoryEntry("root", "root"))

	require.Equal(t, tree.OutcomeRejected, built.Insert("", fileEntry("", "")))
	require.Equal(t, tree.OutcomeRejected, built.Insert("root", directoryEntry("root", "root")))
	require.Equal(t, 1, built.Len())
}

func TestInsertKeysNodeByEntryName(t *testing.T) {
	built := tree.New(directoryEntry(".", "."))

	require.Equal(t, tree.OutcomeInserted, built.Insert("./docs", directoryEntry("./docs", "docs")))
	require.Equal(t, tree.OutcomeInserted, built.Insert("./docs/readme.md", fileEntry("./docs/readme.md", "readme.md")))

	require.Equal(t, []string{".", "docs", "readme.md"}, labelsInWalkOrder(t, built))
}

func TestInsertUnderFilesystemRoot(t *testing.T) {
	built := tree.New(directoryEntry("/", "/"))

	require.Equal(t, tree.OutcomeInserted, built.Insert("/etc", directoryEntry("/etc", "etc")))
	require.Equal(t, tree.OutcomeInserted, built.Insert("/etc/hosts", fileEntry("/etc/hosts", "hosts")))

	require.Equal(t, 3, built.Len())
}

func TestChildrenAreOrderedByLabel(t *testing.T) {
	built := tree.New(directoryEntry("root", "root"))
	for _, name := range []string{"c", "a", "b"} {
		built.Insert("root/"+name, fileEntry("root/"+name, name))
	}

	var labels []string
	for _, childID := range built.Children(built.Root()) {
		labels = append(labels, built.Node(childID).Label)
	}
	require.Equal(t, []string{"a", "b", "c"}, labels)
}

func TestWalkReportsDepthAndStopsOnError(t *testing.T) {
	built := tree.New(directoryEntry("root", "root"))
	built.Insert("root/a", directoryEntry("root/a", "a"))
	built.Insert("root/a/b", directoryEntry("root/a/b", "b"))

	depths := map[string]int{}
	require.NoError(t, built.Walk(func(id tree.NodeID, depth int) error {
		depths[built.Node(id).Label] = depth
		return nil
	}))
	require.Equal(t, map[string]int{"root": 0, "a": 1, "b": 2}, depths)

	stop := errors.New("stop")
	visited := 0
	walkError := built.Walk(func(tree.NodeID, int) error {
		visited++
		return stop
	})
	require.ErrorIs(t, walkError, stop)
	require.Equal(t, 1, visited)
}

func TestInsertOutcomeString(t *testing.T) {
	require.Equal(t, "orphaned", tree.OutcomeOrphaned.String())
	require.Equal(t, "unknown", tree.InsertOutcome(42).String())
}
