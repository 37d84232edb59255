// Package growthplan holds the status state machines for growth sub-items.
// Transitions are table-driven so the stamp-once rules hold structurally
// instead of being scattered across handler conditionals.
package growthplan

import (
	"fmt"
	"time"

	"github.com/unisphere-app/backend/internal/models"
)

// strategyTransitions: state -> reachable states. Dismissed is reachable
// from every live state.
var strategyTransitions = map[string][]string{
	models.StrategySuggested:  {models.StrategyInProgress, models.StrategyDismissed},
	models.StrategyInProgress: {models.StrategyCompleted, models.StrategyDismissed},
	models.StrategyCompleted:  {models.StrategyDismissed},
	models.StrategyDismissed:  {},
}

var collabTransitions = map[string][]string{
	models.CollabSuggested:  {models.CollabContacted, models.CollabRejected},
	models.CollabContacted:  {models.CollabInProgress, models.CollabRejected},
	models.CollabInProgress: {models.CollabCompleted, models.CollabRejected},
	models.CollabCompleted:  {models.CollabRejected},
	models.CollabRejected:   {},
}

func allowed(table map[string][]string, from, to string) bool {
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AdvanceStrategy applies a status event to a strategy. Re-applying the
// current status is a no-op; an unreachable status is an error. Entering
// in_progress stamps the start date once, entering completed stamps the
// completion date and stores the results record once.
func AdvanceStrategy(s *models.Strategy, status string, results map[string]any, now time.Time) error {
	if status == s.Status {
		return nil
	}
	if !allowed(strategyTransitions, s.Status, status) {
		return fmt.Errorf("invalid strategy status transition %s -> %s", s.Status, status)
	}
	s.Status = status
	switch status {
	case models.StrategyInProgress:
		if s.StartDate == nil {
			t := now
			s.StartDate = &t
		}
	case models.StrategyCompleted:
		if s.CompletionDate == nil {
			t := now
			s.CompletionDate = &t
		}
		if s.Results == nil {
			s.Results = results
		}
	}
	return nil
}

// AdvanceCollaboration applies a status event to a collaboration lead.
// Entering contacted stamps the contact date once, entering completed
// stamps the completion date once.
func AdvanceCollaboration(c *models.Collaboration, status string, now time.Time) error {
	if status == c.Status {
		return nil
	}
	if !allowed(collabTransitions, c.Status, status) {
		return fmt.Errorf("invalid collaboration status transition %s -> %s", c.Status, status)
	}
	c.Status = status
	switch status {
	case models.CollabContacted:
		if c.ContactDate == nil {
			t := now
			c.ContactDate = &t
		}
	case models.CollabCompleted:
		if c.CompletionDate == nil {
			t := now
			c.CompletionDate = &t
		}
	}
	return nil
}

// ActiveStrategies filters to strategies still worth showing on the
// overview (suggested or in progress).
func ActiveStrategies(strategies []models.Strategy) []models.Strategy {
	out := []models.Strategy{}
	for _, s := range strategies {
		if s.Status == models.StrategySuggested || s.Status == models.StrategyInProgress {
			out = append(out, s)
		}
	}
	return out
}

// ActiveCollaborations filters to leads that have not finished or fallen
// through.
func ActiveCollaborations(collabs []models.Collaboration) []models.Collaboration {
	out := []models.Collaboration{}
	for _, c := range collabs {
		switch c.Status {
		case models.CollabSuggested, models.CollabContacted, models.CollabInProgress:
			out = append(out, c)
		}
	}
	return out
}

// ActiveTopics filters to active, non-expired trending topics. Expiry is
// implicit: a topic past its expiresAt is excluded without a transition.
func ActiveTopics(topics []models.TrendingTopic, now time.Time) []models.TrendingTopic {
	out := []models.TrendingTopic{}
	for _, t := range topics {
		if t.Status == models.TopicActive && !t.Expired(now) {
			out = append(out, t)
		}
	}
	return out
}
