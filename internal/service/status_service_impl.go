package service

import (
	"context"
	"sort"

	"github.com/alexanderramin/tally/internal/domain"
)

type statusService struct {
	ws *Workspace
}

func NewStatusService(ws *Workspace) StatusService {
	return &statusService{ws: ws}
}

func (s *statusService) Summary(ctx context.Context) (*StatusSummary, error) {
	list := s.ws.List.List()
	sum := &StatusSummary{
		ProjectName:    list.ProjectName,
		ProjectVersion: list.ProjectVersion,
		Total:          len(list.Tasks),
		OpenByPriority: make(map[domain.Priority]int),
		HistoryEntries: s.ws.History.Len(),
		Unversioned:    len(list.UnversionedCompletedTasks()),
	}

	tags := make(map[string]*TagCount)
	for _, t := range list.Tasks {
		if t.Completed {
			sum.Done++
		} else {
			sum.Open++
			sum.OpenByPriority[t.Priority]++
		}
		for _, tag := range t.Tags {
			c, ok := tags[tag]
			if !ok {
				c = &TagCount{Tag: tag}
				tags[tag] = c
			}
			if t.Completed {
				c.Done++
			} else {
				c.Open++
			}
		}
	}
	if sum.Total > 0 {
		sum.CompletionRate = float64(sum.Done) / float64(sum.Total) * 100
	}

	for _, c := range tags {
		sum.Tags = append(sum.Tags, *c)
	}
	sortTagCounts(sum.Tags)
	return sum, nil
}

// sortTagCounts orders by total usage, busiest first, then by name.
func sortTagCounts(counts []TagCount) {
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Total() != counts[j].Total() {
			return counts[i].Total() > counts[j].Total()
		}
		return counts[i].Tag < counts[j].Tag
	})
}
