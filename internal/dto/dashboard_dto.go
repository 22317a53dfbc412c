package dto

import (
	"time"

	"github.com/google/uuid"
)

type DashboardMetricsResponse struct {
	PipelineRunsTotal  int64      `json:"pipeline_runs_total"`
	PendingApprovals   int64      `json:"pending_approvals"`
	ActivityLast24h    int64      `json:"activity_last_24h"`
	Conversations      int64      `json:"conversations"`
	ConnectedProviders []string   `json:"connected_providers"`
	LastRunAt          *time.Time `json:"last_run_at,omitempty"`
}

// --- Personal mode dashboard ---

type TaskResponse struct {
	Id             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Priority       string  `json:"priority"`
	Category       string  `json:"category"`
	DueDate        string  `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Completed      bool    `json:"completed"`
	Source         string  `json:"source"`
}

type DailySummaryResponse struct {
	Date        string         `json:"date"`
	Greeting    string         `json:"greeting"`
	Tasks       []TaskResponse `json:"tasks"`
	StudyHours  float64        `json:"study_hours"`
	CodingHours float64        `json:"coding_hours"`
	Insights    []string       `json:"insights"`
}

type CalendarBlockResponse struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Category    string `json:"category"`
	Color       string `json:"color"`
	Description string `json:"description"`
	GradeImpact string `json:"grade_impact,omitempty"`
}

type CalendarTodayResponse struct {
	Date            string                  `json:"date"`
	TotalBlocks     int                     `json:"total_blocks"`
	StudyHours      float64                 `json:"study_hours"`
	CodingHours     float64                 `json:"coding_hours"`
	Blocks          []CalendarBlockResponse `json:"blocks"`
	HighImpactExams []CalendarBlockResponse `json:"high_impact_exams"`
}

// --- Workspace mode dashboard ---

type ProjectResponse struct {
	Id          string   `json:"id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	Progress    int      `json:"progress"`
	Description string   `json:"description"`
	TeamMembers []string `json:"team_members"`
	LastUpdated string   `json:"last_updated"`
	TechStack   []string `json:"tech_stack"`
}

type UpdateFeedItemResponse struct {
	Id        string `json:"id"`
	Message   string `json:"message"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
	Project   string `json:"project,omitempty"`
	Verified  bool   `json:"verified"`
}

type PriorityResponse struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Urgency     string `json:"urgency"`
	Project     string `json:"project"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	AIReasoning string `json:"ai_reasoning"`
}

type ProjectDetailResponse struct {
	Project    ProjectResponse          `json:"project"`
	Activities []UpdateFeedItemResponse `json:"activities"`
	Priorities []PriorityResponse       `json:"priorities"`
}

type TeamMetricsResponse struct {
	HoursSaved            float64 `json:"hours_saved"`
	HoursSavedTrend       float64 `json:"hours_saved_trend"`
	MarketAlerts          int     `json:"market_alerts"`
	MarketAlertsNew       int     `json:"market_alerts_new"`
	ActiveLeads           int     `json:"active_leads"`
	ActiveLeadsConversion float64 `json:"active_leads_conversion"`
	SprintVelocity        float64 `json:"sprint_velocity"`
	TeamMood              string  `json:"team_mood"`
}

type PipelineRunResponse struct {
	Id               uuid.UUID          `json:"id"`
	RunKey           string             `json:"run_key"`
	Mode             string             `json:"mode"`
	Summary          string             `json:"summary"`
	RequiresApproval bool               `json:"requires_approval"`
	ApprovalStatus   string             `json:"approval_status"`
	ProposedAction   *ProposedActionDTO `json:"proposed_action,omitempty"`
	Status           string             `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
}
