// Package stats aggregates journaled task results into per-role figures and
// a weighted reliability score.
package stats

import (
	"time"

	"github.com/okheath/crew/internal/store"
)

// RoleStats holds outcome counts for one agent role.
type RoleStats struct {
	Total      int
	Succeeded  int
	Escalated  int
	Failed     int
	Iterations int
}

// Summary aggregates a set of result records.
type Summary struct {
	Total        int
	Succeeded    int
	Escalated    int
	Failed       int
	Iterations   int
	InputTokens  int
	OutputTokens int
	ByRole       map[string]*RoleStats
	LastRun      time.Time
}

// Aggregate folds result records into a Summary.
func Aggregate(records []*store.ResultRecord) *Summary {
	sum := &Summary{ByRole: make(map[string]*RoleStats)}

	for _, r := range records {
		role := sum.ByRole[r.Result.AgentType]
		if role == nil {
			role = &RoleStats{}
			sum.ByRole[r.Result.AgentType] = role
		}

		sum.Total++
		role.Total++
		sum.Iterations += r.Result.Iterations
		role.Iterations += r.Result.Iterations
		sum.InputTokens += r.Result.Usage.InputTokens
		sum.OutputTokens += r.Result.Usage.OutputTokens

		switch {
		case r.Result.Success:
			sum.Succeeded++
			role.Succeeded++
		case r.Result.Escalated:
			sum.Escalated++
			role.Escalated++
		default:
			sum.Failed++
			role.Failed++
		}

		if r.CreatedAt.After(sum.LastRun) {
			sum.LastRun = r.CreatedAt
		}
	}
	return sum
}

// AvgIterations returns the mean iteration count per run.
func (s *Summary) AvgIterations() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Iterations) / float64(s.Total)
}

// Score represents the computed reliability of the crew (0-100).
type Score struct {
	Total       int
	SuccessRate int // 0-40
	Escalations int // 0-25
	Efficiency  int // 0-20
	Recency     int // 0-15
}

// ComputeScore scores a summary. An empty summary scores zero.
func ComputeScore(sum *Summary) *Score {
	sc := &Score{}
	if sum.Total == 0 {
		return sc
	}

	// Success rate (40 pts) - direct proportion of successful runs.
	sc.SuccessRate = int(40 * float64(sum.Succeeded) / float64(sum.Total))

	// Escalations (25 pts) - fewer escalations = more points.
	sc.Escalations = int(25 * (1 - float64(sum.Escalated)/float64(sum.Total)))

	// Efficiency (20 pts) - fewer iterations per run = better.
	sc.Efficiency = scoreEfficiency(sum.AvgIterations(), 20)

	// Recency (15 pts) - recent activity = more points.
	sc.Recency = scoreRecency(sum.LastRun, 15)

	sc.Total = sc.SuccessRate + sc.Escalations + sc.Efficiency + sc.Recency
	return sc
}

// scoreRecency converts time since last run to points.
func scoreRecency(t time.Time, maxPoints int) int {
	if t.IsZero() {
		return 0
	}
	days := int(time.Since(t).Hours() / 24)
	switch {
	case days <= 1:
		return maxPoints
	case days <= 3:
		return int(float64(maxPoints) * 0.9)
	case days <= 7:
		return int(float64(maxPoints) * 0.75)
	case days <= 14:
		return int(float64(maxPoints) * 0.6)
	case days <= 30:
		return int(float64(maxPoints) * 0.4)
	default:
		return int(float64(maxPoints) * 0.2)
	}
}

// scoreEfficiency penalizes runs that burn many iterations.
func scoreEfficiency(avg float64, maxPoints int) int {
	switch {
	case avg <= 2:
		return maxPoints
	case avg <= 4:
		return int(float64(maxPoints) * 0.8)
	case avg <= 6:
		return int(float64(maxPoints) * 0.6)
	case avg <= 8:
		return int(float64(maxPoints) * 0.4)
	default:
		return int(float64(maxPoints) * 0.2)
	}
}
