package service

import (
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/matcher"
)

// MinRemoveConfidence is the lowest match confidence Remove accepts.
const MinRemoveConfidence = 50

// DefaultPruneAge applies when PruneRequest.Age is zero.
const DefaultPruneAge = 30 * 24 * time.Hour

type AddRequest struct {
	Description string
	// Priority falls back to preferences.default_priority, then medium.
	Priority domain.Priority
	Tags     []string
	DryRun   bool
}

type AddResult struct {
	Task   domain.Task
	DryRun bool
}

type CompleteRequest struct {
	Query   string
	Version *domain.Version
	Commit  string
	// AutoCommit commits TODO.md and the ledger afterwards, as does
	// preferences.auto_commit_todo.
	AutoCommit bool
	DryRun     bool
}

type CompleteResult struct {
	Task      domain.Task
	Match     matcher.Match
	Recorded  bool
	Committed bool
	DryRun    bool
}

type RemoveRequest struct {
	Query  string
	DryRun bool
}

type RemoveResult struct {
	Task     domain.Task
	Match    matcher.Match
	Recorded bool
	DryRun   bool
}

type PruneRequest struct {
	Age        time.Duration
	AutoCommit bool
	DryRun     bool
}

type PruneResult struct {
	Cutoff    time.Time
	Age       time.Duration
	Tasks     []domain.Task
	Recorded  int
	Committed bool
	DryRun    bool
}

type VersionRequest struct {
	Version    domain.Version
	AutoCommit bool
	DryRun     bool
}

type VersionResult struct {
	Version domain.Version
	// Pending are the completed tasks that had no version.
	Pending  []domain.Task
	Assigned int
	Recorded int
	// LedgerAssigned counts ledger entries that received the version.
	LedgerAssigned int
	// Released holds every ledger change of Version after the call.
	Released  []domain.Change
	Committed bool
	DryRun    bool
}

type TagRequest struct {
	VersionRequest
	// Message defaults to "Release <tag>".
	Message string
}

type TagResult struct {
	*VersionResult
	Tag     string
	Message string
}

type ScanRequest struct {
	// Depth is how many commits to read; zero means gitops.DefaultScanDepth.
	Depth int
	// Auto accepts every match without calling Confirm.
	Auto   bool
	DryRun bool
	// Confirm decides interactively; nil rejects every match unless Auto.
	Confirm func(ScanMatch) bool
}

// ScanMatch pairs an open task with the commit item that best matches it.
type ScanMatch struct {
	Index    int
	Task     domain.Task
	Commit   string
	DoneItem string
	Score    int
}

type ScanResult struct {
	Matches   []ScanMatch
	Completed []domain.Task
	Skipped   []ScanMatch
	Ignored   int
	DryRun    bool
}

type StatusSummary struct {
	ProjectName    string
	ProjectVersion domain.Version
	Total          int
	Open           int
	Done           int
	// CompletionRate is Done/Total in percent, 0 for an empty list.
	CompletionRate float64
	OpenByPriority map[domain.Priority]int
	Tags           []TagCount
	HistoryEntries int
	Unversioned    int
}

type TagCount struct {
	Tag  string
	Open int
	Done int
}

func (c TagCount) Total() int { return c.Open + c.Done }

type ProjectStatus struct {
	Project *domain.Project
	Name    string
	Version domain.Version
	Total   int
	Open    int
	Done    int
	// Err is set when the project's TODO.md could not be read.
	Err error
}

type RegistryStatus struct {
	Projects []ProjectStatus
	Loaded   int
	Total    int
	Open     int
	Done     int
}

// CompletionRate is the completion percentage across loaded projects.
func (s *RegistryStatus) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Done) / float64(s.Total) * 100
}
