// Package plan holds the pure productivity heuristics: completion-rate
// analysis, priority scoring, and greedy daily planning. Everything in
// here is deterministic given the task list and the reference time, and
// performs no I/O.
package plan

import (
	"fmt"
	"math"
	"time"

	"github.com/rochadelon/super-productivity-mcp/internal/superprod"
)

const (
	day = 24 * time.Hour

	// defaultTaskEstimate is assumed for tasks without a time estimate
	// when packing the daily plan.
	defaultTaskEstimate = time.Hour

	// breakFraction of the available time is reserved when breaks are
	// requested.
	breakFraction = 0.15
)

// Analysis summarizes recent activity over a lookback window.
type Analysis struct {
	Period             string   `json:"period"`
	TotalTasks         int      `json:"totalTasks"`
	CompletedTasks     int      `json:"completedTasks"`
	CompletionRate     string   `json:"completionRate"`
	TotalTimeEstimated string   `json:"totalTimeEstimated"`
	TotalTimeSpent     string   `json:"totalTimeSpent"`
	EstimationAccuracy string   `json:"estimationAccuracy"`
	Insights           []string `json:"insights"`
}

// Analyze computes completion and estimation statistics over tasks
// created or completed within the last days days, relative to now.
func Analyze(tasks []superprod.Task, days int, now time.Time) Analysis {
	cutoff := now.Add(-time.Duration(days) * day).UnixMilli()

	var recent, completed []superprod.Task
	var totalEstimated, totalSpent int64
	for _, t := range tasks {
		if t.Created < cutoff && (t.DoneOn == 0 || t.DoneOn < cutoff) {
			continue
		}
		recent = append(recent, t)
		totalEstimated += t.TimeEstimate
		totalSpent += t.TimeSpent
		if t.IsDone {
			completed = append(completed, t)
		}
	}

	a := Analysis{
		Period:             fmt.Sprintf("%d days", days),
		TotalTasks:         len(recent),
		CompletedTasks:     len(completed),
		CompletionRate:     "0%",
		TotalTimeEstimated: fmt.Sprintf("%.1f hours", hours(totalEstimated)),
		TotalTimeSpent:     fmt.Sprintf("%.1f hours", hours(totalSpent)),
		EstimationAccuracy: "N/A",
	}
	if len(recent) > 0 {
		a.CompletionRate = fmt.Sprintf("%.1f%%", float64(len(completed))/float64(len(recent))*100)
	}
	if totalEstimated > 0 {
		a.EstimationAccuracy = fmt.Sprintf("%.1f%%", float64(totalSpent)/float64(totalEstimated)*100)
	}
	a.Insights = insights(recent, completed, totalEstimated, totalSpent)
	return a
}

func hours(ms int64) float64 { return float64(ms) / float64(time.Hour.Milliseconds()) }

func insights(recent, completed []superprod.Task, totalEstimated, totalSpent int64) []string {
	out := []string{}

	var completionRate float64
	if len(recent) > 0 {
		completionRate = float64(len(completed)) / float64(len(recent))
	}
	if completionRate > 0.8 {
		out = append(out, "Excellent completion rate! You are keeping a great pace.")
	} else if len(recent) > 0 && completionRate < 0.4 {
		out = append(out, "Low completion rate. Consider revisiting your estimates or taking on fewer tasks.")
	}

	if totalEstimated > 0 {
		accuracy := float64(totalSpent) / float64(totalEstimated)
		if accuracy > 1.2 {
			out = append(out, "You are underestimating the time needed. Consider adding buffers to estimates.")
		} else if accuracy < 0.8 {
			out = append(out, "You are overestimating. Tasks finish faster than expected.")
		}
	}

	withoutEstimate := 0
	for _, t := range recent {
		if t.TimeEstimate == 0 {
			withoutEstimate++
		}
	}
	if float64(withoutEstimate) > float64(len(recent))*0.3 {
		out = append(out, fmt.Sprintf("%d tasks have no time estimate. Adding estimates helps planning.", withoutEstimate))
	}

	return out
}

// Suggestion is one prioritized task with the score breakdown.
type Suggestion struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	PriorityScore int      `json:"priorityScore"`
	Reasons       []string `json:"reasons"`
}

// Score computes the priority score for a single task. Higher means
// more urgent: approaching due dates dominate, then missing estimates,
// open subtasks, and plain age.
func Score(t superprod.Task, now time.Time) int {
	score := 0

	if t.DueDate > 0 {
		daysUntilDue := float64(t.DueDate-now.UnixMilli()) / float64(day.Milliseconds())
		switch {
		case daysUntilDue < 1:
			score += 50
		case daysUntilDue < 3:
			score += 30
		case daysUntilDue < 7:
			score += 10
		}
	}
	if t.TimeEstimate == 0 {
		score += 15
	}
	if len(t.SubTaskIDs) > 0 {
		score += 20
	}

	ageInDays := float64(now.UnixMilli()-t.Created) / float64(day.Milliseconds())
	if ageInDays > 7 {
		score += 10
	}
	if ageInDays > 14 {
		score += 15
	}
	return score
}

// Reasons explains a task's score in human terms.
func Reasons(t superprod.Task, now time.Time) []string {
	out := []string{}

	if t.DueDate > 0 {
		daysUntilDue := float64(t.DueDate-now.UnixMilli()) / float64(day.Milliseconds())
		if daysUntilDue < 1 {
			out = append(out, "Urgent deadline (< 24h)")
		} else if daysUntilDue < 3 {
			out = append(out, "Deadline approaching (< 3 days)")
		}
	}
	if t.TimeEstimate == 0 {
		out = append(out, "No time estimate")
	}
	if len(t.SubTaskIDs) > 0 {
		out = append(out, fmt.Sprintf("Has %d subtasks", len(t.SubTaskIDs)))
	}
	if float64(now.UnixMilli()-t.Created)/float64(day.Milliseconds()) > 14 {
		out = append(out, "Old task (> 2 weeks)")
	}
	return out
}

// SuggestPriorities returns at most maxTasks pending tasks ordered by
// descending score. Done tasks never appear; when projectID is set only
// that project's tasks are considered. The sort is stable so equally
// scored tasks keep their input order.
func SuggestPriorities(tasks []superprod.Task, projectID string, maxTasks int, now time.Time) []Suggestion {
	type scored struct {
		task  superprod.Task
		score int
	}
	var pending []scored
	for _, t := range tasks {
		if t.IsDone {
			continue
		}
		if projectID != "" && t.ProjectID != projectID {
			continue
		}
		pending = append(pending, scored{task: t, score: Score(t, now)})
	}

	// Stable insertion keeps input order for ties.
	for i := 1; i < len(pending); i++ {
		for j := i; j > 0 && pending[j].score > pending[j-1].score; j-- {
			pending[j], pending[j-1] = pending[j-1], pending[j]
		}
	}

	if maxTasks > 0 && len(pending) > maxTasks {
		pending = pending[:maxTasks]
	}
	out := make([]Suggestion, 0, len(pending))
	for _, s := range pending {
		out = append(out, Suggestion{
			ID:            s.task.ID,
			Title:         s.task.Title,
			PriorityScore: s.score,
			Reasons:       Reasons(s.task, now),
		})
	}
	return out
}

// PlannedTask is one slot in a daily plan.
type PlannedTask struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
	Order            int    `json:"order"`
}

// DailyPlan is a greedy schedule of pending tasks into one work day.
type DailyPlan struct {
	Date               string        `json:"date"`
	TotalAvailableTime string        `json:"totalAvailableTime"`
	WorkTime           string        `json:"workTime"`
	BreakTime          string        `json:"breakTime"`
	PlannedTasks       []PlannedTask `json:"plannedTasks"`
	TotalPlannedTime   string        `json:"totalPlannedTime"`
	UtilizationRate    string        `json:"utilizationRate"`
}

// BuildDailyPlan packs pending tasks first-fit into the available work
// minutes. With breaks enabled, 15% of the available time is reserved
// and never scheduled. Tasks with no estimate count as one hour.
func BuildDailyPlan(tasks []superprod.Task, availableHours float64, includeBreaks bool, now time.Time) DailyPlan {
	availableMinutes := availableHours * 60
	breakMinutes := 0.0
	if includeBreaks {
		breakMinutes = math.Floor(availableMinutes * breakFraction)
	}
	workMinutes := availableMinutes - breakMinutes

	var planned []PlannedTask
	totalTime := 0.0
	for _, t := range tasks {
		if t.IsDone {
			continue
		}
		estimate := t.TimeEstimate
		if estimate == 0 {
			estimate = defaultTaskEstimate.Milliseconds()
		}
		estimatedMinutes := float64(estimate) / float64(time.Minute.Milliseconds())
		if totalTime+estimatedMinutes > workMinutes {
			continue
		}
		planned = append(planned, PlannedTask{
			ID:               t.ID,
			Title:            t.Title,
			EstimatedMinutes: int(math.Round(estimatedMinutes)),
			Order:            len(planned) + 1,
		})
		totalTime += estimatedMinutes
	}

	breakTime := "None"
	if includeBreaks {
		breakTime = fmt.Sprintf("%d hours", int(math.Round(breakMinutes/60)))
	}
	utilization := 0.0
	if workMinutes > 0 {
		utilization = totalTime / workMinutes * 100
	}
	return DailyPlan{
		Date:               now.Format("2006-01-02"),
		TotalAvailableTime: fmt.Sprintf("%g hours", availableHours),
		WorkTime:           fmt.Sprintf("%d hours", int(math.Round(workMinutes/60))),
		BreakTime:          breakTime,
		PlannedTasks:       planned,
		TotalPlannedTime:   fmt.Sprintf("%d hours %d minutes", int(totalTime)/60, int(totalTime)%60),
		UtilizationRate:    fmt.Sprintf("%.1f%%", utilization),
	}
}
