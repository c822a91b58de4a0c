// Package commands contains the core logic for data collection for each command.
package commands

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/pathtree/internal/filter"
	"github.com/temirov/pathtree/internal/tree"
	"github.com/temirov/pathtree/internal/types"
	"github.com/temirov/pathtree/internal/walk"
)

// ErrEmptyTraversal is returned when the root path yields no entries.
var ErrEmptyTraversal = errors.New("no entries found")

const (
	// errorInclusionPatternFormat is used when the inclusion pattern does not compile.
	errorInclusionPatternFormat = "inclusion pattern: %w"
	// errorExclusionPatternFormat is used when the exclusion pattern does not compile.
	errorExclusionPatternFormat = "exclusion pattern: %w"
	// errorTraversalFormat is used when the traversal aborts.
	errorTraversalFormat = "traversing %s: %w"
	// errorEmptyTraversalFormat names the root that produced nothing.
	errorEmptyTraversalFormat = "%w under %s"

	logMessageMatched  = "inclusion pattern matched"
	logMessageOrphan   = "dropping entry with missing parent"
	logMessageReplaced = "replacing entry with duplicate name"
	logMessageWalk     = "traversal warning"
)

// Stats counts what happened to each entry after the root.
type Stats struct {
	Entries  int
	Filtered int
	Excluded int
	Inserted int
	Replaced int
	Orphaned int
	Rejected int
}

// TreeBuilder builds a filtered directory tree using configured options.
type TreeBuilder struct {
	Pattern        string
	Exclude        string
	Syntax         string
	SkipUnreadable bool
	Logger         *zap.Logger
	// Stream replaces walk.Stream as the entry source when set.
	Stream walk.StreamFunc
}

// GetTreeData traverses rootPath and assembles the entries that survive
// inclusion and exclusion into a tree. Both patterns are compiled before the
// traversal starts.
func (treeBuilder *TreeBuilder) GetTreeData(rootPath string) (*tree.Tree, Stats, error) {
	logger := treeBuilder.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	inclusionMatcher, inclusionError := filter.Compile(treeBuilder.Pattern, treeBuilder.Syntax)
	if inclusionError != nil {
		return nil, Stats{}, fmt.Errorf(errorInclusionPatternFormat, inclusionError)
	}
	exclusionMatcher, exclusionError := filter.Compile(treeBuilder.Exclude, treeBuilder.Syntax)
	if exclusionError != nil {
		return nil, Stats{}, fmt.Errorf(errorExclusionPatternFormat, exclusionError)
	}

	stream := treeBuilder.Stream
	if stream == nil {
		stream = walk.Stream
	}
	entries, walkError := stream.Collect(walk.Options{
		Root:           rootPath,
		SkipUnreadable: treeBuilder.SkipUnreadable,
		Warn: func(message string) {
			logger.Warn(logMessageWalk, zap.String("detail", message))
		},
	})
	if walkError != nil {
		return nil, Stats{}, fmt.Errorf(errorTraversalFormat, rootPath, walkError)
	}
	if len(entries) == 0 {
		return nil, Stats{}, fmt.Errorf(errorEmptyTraversalFormat, ErrEmptyTraversal, rootPath)
	}

	keptSet := filter.NewKeptSet(entries, inclusionMatcher)
	if keptSet.Active() {
		logger.Debug(logMessageMatched, zap.String("pattern", inclusionMatcher.Pattern()), zap.Strings("paths", keptSet.Matches()))
	}
	exclusion := filter.Exclusion{Matcher: exclusionMatcher}

	result := tree.New(entries[0], tree.WithOrphanHandler(func(fullPath string, missingSegment string) {
		logger.Debug(logMessageOrphan, zap.String("path", fullPath), zap.String("missing", missingSegment))
	}))
	stats := Stats{Entries: len(entries) - 1}
	for _, entry := range entries[1:] {
		stats.record(insertEntry(result, entry, keptSet, exclusion), logger, entry)
	}
	return result, stats, nil
}

type entryDisposition int

const (
	dispositionFiltered entryDisposition = iota
	dispositionExcluded
	dispositionPlaced
)

type insertion struct {
	disposition entryDisposition
	outcome     tree.InsertOutcome
}

// insertEntry applies inclusion, then exclusion, then places the entry.
func insertEntry(target *tree.Tree, entry types.Entry, keptSet filter.KeptSet, exclusion filter.Exclusion) insertion {
	if !keptSet.Allows(entry.FullPath) {
		return insertion{disposition: dispositionFiltered}
	}
	if exclusion.Excludes(entry.FullPath) {
		return insertion{disposition: dispositionExcluded}
	}
	return insertion{disposition: dispositionPlaced, outcome: target.Insert(entry.FullPath, entry)}
}

func (stats *Stats) record(result insertion, logger *zap.Logger, entry types.Entry) {
	switch result.disposition {
	case dispositionFiltered:
		stats.Filtered++
		return
	case dispositionExcluded:
		stats.Excluded++
		return
	}
	switch result.outcome {
	case tree.OutcomeInserted:
		stats.Inserted++
	case tree.OutcomeReplaced:
		stats.Replaced++
		logger.Debug(logMessageReplaced, zap.String("path", entry.FullPath))
	case tree.OutcomeOrphaned:
		stats.Orphaned++
	case tree.OutcomeRejected:
		stats.Rejected++
	}
}
