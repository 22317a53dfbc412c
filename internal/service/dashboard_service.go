// FILE: internal/service/dashboard_service.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"velocity-ai-be/internal/dto"
	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/repository/specification"
	"velocity-ai-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IDashboardService serves both dashboard surfaces: the curated demo
// dataset backing the personal and workspace views, and live metrics
// computed from the run archive. Approved schedule proposals land here
// too, as calendar blocks appended to the demo calendar.
type IDashboardService interface {
	GetTasks() []dto.TaskResponse
	GetDailySummary() *dto.DailySummaryResponse
	GetCalendar() []dto.CalendarBlockResponse
	GetCalendarToday() *dto.CalendarTodayResponse
	GetProjects() []dto.ProjectResponse
	GetProject(projectId string) (*dto.ProjectDetailResponse, error)
	GetUpdates() []dto.UpdateFeedItemResponse
	GetPriorities() []dto.PriorityResponse
	GetTeamMetrics() *dto.TeamMetricsResponse

	GetMetrics(ctx context.Context, userId uuid.UUID) (*dto.DashboardMetricsResponse, error)
	GetRecentRuns(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.PipelineRunResponse, error)

	// AddScheduleBlocks converts approved schedule proposals into
	// calendar blocks. Called by the approval flow only.
	AddScheduleBlocks(proposals []string)
}

type dashboardService struct {
	uowFactory unitofwork.RepositoryFactory

	mu             sync.RWMutex
	approvedBlocks []dto.CalendarBlockResponse
}

func NewDashboardService(uowFactory unitofwork.RepositoryFactory) IDashboardService {
	return &dashboardService{
		uowFactory:     uowFactory,
		approvedBlocks: make([]dto.CalendarBlockResponse, 0),
	}
}

func (ds *dashboardService) GetTasks() []dto.TaskResponse {
	return demoTasks()
}

func (ds *dashboardService) GetDailySummary() *dto.DailySummaryResponse {
	tasks := demoTasks()
	return &dto.DailySummaryResponse{
		Date:        "2026-02-20",
		Greeting:    "Good afternoon! You have 5 tasks today — let's crush it 🚀",
		Tasks:       tasks[:3],
		StudyHours:  4.0,
		CodingHours: 3.0,
		Insights: []string{
			"📊 Your Linear Algebra exam is in 2 days — I've front-loaded study time.",
			"🐛 The login bug is trending on your error tracker. Prioritized for tonight.",
			"💡 Market research found 2 competitor launches this week — check Workspace mode.",
		},
	}
}

func (ds *dashboardService) GetCalendar() []dto.CalendarBlockResponse {
	blocks := demoCalendar()

	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return append(blocks, ds.approvedBlocks...)
}

func (ds *dashboardService) GetCalendarToday() *dto.CalendarTodayResponse {
	blocks := ds.GetCalendar()

	var studyHours, codingHours float64
	highImpact := make([]dto.CalendarBlockResponse, 0)
	for _, b := range blocks {
		switch b.Category {
		case "study":
			studyHours += 2.0
		case "coding":
			codingHours += 2.0
		}
		if b.GradeImpact == "high" {
			highImpact = append(highImpact, b)
		}
	}

	return &dto.CalendarTodayResponse{
		Date:            "2026-02-20",
		TotalBlocks:     len(blocks),
		StudyHours:      studyHours,
		CodingHours:     codingHours,
		Blocks:          blocks,
		HighImpactExams: highImpact,
	}
}

func (ds *dashboardService) GetProjects() []dto.ProjectResponse {
	return demoProjects()
}

func (ds *dashboardService) GetProject(projectId string) (*dto.ProjectDetailResponse, error) {
	var project *dto.ProjectResponse
	for _, p := range demoProjects() {
		if p.Id == projectId {
			found := p
			project = &found
			break
		}
	}
	if project == nil {
		return nil, fmt.Errorf("project not found")
	}

	activities := make([]dto.UpdateFeedItemResponse, 0)
	for _, u := range demoUpdates() {
		if u.Project == project.Name {
			activities = append(activities, u)
		}
	}
	priorities := make([]dto.PriorityResponse, 0)
	for _, p := range demoPriorities() {
		if p.Project == project.Name {
			priorities = append(priorities, p)
		}
	}

	return &dto.ProjectDetailResponse{
		Project:    *project,
		Activities: activities,
		Priorities: priorities,
	}, nil
}

func (ds *dashboardService) GetUpdates() []dto.UpdateFeedItemResponse {
	return demoUpdates()
}

func (ds *dashboardService) GetPriorities() []dto.PriorityResponse {
	return demoPriorities()
}

func (ds *dashboardService) GetTeamMetrics() *dto.TeamMetricsResponse {
	return &dto.TeamMetricsResponse{
		HoursSaved:            127.5,
		HoursSavedTrend:       12.3,
		MarketAlerts:          8,
		MarketAlertsNew:       3,
		ActiveLeads:           24,
		ActiveLeadsConversion: 18.7,
		SprintVelocity:        89.2,
		TeamMood:              "great",
	}
}

func (ds *dashboardService) GetMetrics(ctx context.Context, userId uuid.UUID) (*dto.DashboardMetricsResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	runsTotal, err := uow.PipelineRunRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	pending, err := uow.PipelineRunRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByApprovalStatus{Status: "pending"},
	)
	if err != nil {
		return nil, err
	}
	activity24h, err := uow.ActivityRepository().CountSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	conversations, err := uow.ConversationRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	connections, err := uow.IntegrationRepository().FindAllByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	providers := make([]string, 0, len(connections))
	for _, c := range connections {
		if c.Status == entity.IntegrationStatusConnected {
			providers = append(providers, c.Provider)
		}
	}

	resp := &dto.DashboardMetricsResponse{
		PipelineRunsTotal:  runsTotal,
		PendingApprovals:   pending,
		ActivityLast24h:    activity24h,
		Conversations:      conversations,
		ConnectedProviders: providers,
	}

	latest, err := uow.PipelineRunRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		resp.LastRunAt = &latest.CreatedAt
	}
	return resp, nil
}

func (ds *dashboardService) GetRecentRuns(ctx context.Context, userId uuid.UUID, limit int) ([]*dto.PipelineRunResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	runs, err := uow.PipelineRunRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: 0},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.PipelineRunResponse, 0, len(runs))
	for _, run := range runs {
		r := &dto.PipelineRunResponse{
			Id:               run.Id,
			RunKey:           run.RunKey,
			Mode:             run.Mode,
			Summary:          run.Summary,
			RequiresApproval: run.RequiresApproval,
			ApprovalStatus:   run.ApprovalStatus,
			Status:           string(run.Status),
			CreatedAt:        run.CreatedAt,
		}
		if run.ActionDescription != "" {
			r.ProposedAction = &dto.ProposedActionDTO{
				Type:        run.ActionType,
				Description: run.ActionDescription,
				Status:      run.ActionStatus,
			}
		}
		resp = append(resp, r)
	}
	return resp, nil
}

func (ds *dashboardService) AddScheduleBlocks(proposals []string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	// Approved blocks land in the evening, one hour each, after any
	// previously approved blocks.
	day := time.Now().Format("2006-01-02")
	start := 18 + len(ds.approvedBlocks)
	for i, proposal := range proposals {
		hour := start + i
		if hour > 22 {
			hour = 22
		}
		ds.approvedBlocks = append(ds.approvedBlocks, dto.CalendarBlockResponse{
			Id:          fmt.Sprintf("approved-%s", uuid.New().String()[:8]),
			Title:       proposal,
			Start:       fmt.Sprintf("%sT%02d:00:00", day, hour),
			End:         fmt.Sprintf("%sT%02d:00:00", day, hour+1),
			Category:    "study",
			Color:       "#f59e0b",
			Description: "Scheduled by your assistant after approval",
		})
	}
}

// ── Curated demo data ──

func demoTasks() []dto.TaskResponse {
	return []dto.TaskResponse{
		{
			Id:             "t1",
			Title:          "Study Linear Algebra — Chapter 7",
			Description:    "Review eigenvalues and eigenvectors. High weight on final exam.",
			Priority:       "critical",
			Category:       "academic",
			DueDate:        "2026-02-20",
			EstimatedHours: 2.5,
			Source:         "ai_generated",
		},
		{
			Id:             "t2",
			Title:          "Fix Login Bug (#47)",
			Description:    "Auth token not refreshing on mobile. Affects 23% of users.",
			Priority:       "high",
			Category:       "startup",
			DueDate:        "2026-02-21",
			EstimatedHours: 2.0,
			Source:         "ai_generated",
		},
		{
			Id:             "t3",
			Title:          "Review PR #52 — Payment Flow",
			Description:    "Aarav submitted the Stripe integration. Needs code review.",
			Priority:       "high",
			Category:       "startup",
			DueDate:        "2026-02-20",
			EstimatedHours: 1.0,
			Source:         "ai_generated",
		},
		{
			Id:             "t4",
			Title:          "Data Structures Assignment",
			Description:    "Binary tree traversal problems. Due by midnight.",
			Priority:       "medium",
			Category:       "academic",
			DueDate:        "2026-02-20",
			EstimatedHours: 1.5,
			Source:         "ai_generated",
		},
		{
			Id:             "t5",
			Title:          "Prepare Pitch Deck Slide 3-5",
			Description:    "Add market size data and competitive analysis for investor meeting.",
			Priority:       "medium",
			Category:       "startup",
			DueDate:        "2026-02-22",
			EstimatedHours: 2.0,
			Source:         "ai_generated",
		},
	}
}

func demoCalendar() []dto.CalendarBlockResponse {
	return []dto.CalendarBlockResponse{
		{
			Id:          "c1",
			Title:       "☀️ Morning Review",
			Start:       "2026-02-20T08:00:00",
			End:         "2026-02-20T08:30:00",
			Category:    "study",
			Color:       "#6366f1",
			Description: "Quick review of yesterday's notes",
		},
		{
			Id:          "c2",
			Title:       "📐 Linear Algebra Lecture",
			Start:       "2026-02-20T09:00:00",
			End:         "2026-02-20T10:30:00",
			Category:    "study",
			Color:       "#6366f1",
			Description: "Chapter 7: Eigenvalues & Eigenvectors",
			GradeImpact: "high",
		},
		{
			Id:          "c3",
			Title:       "💻 Sprint Work — Auth Module",
			Start:       "2026-02-20T11:00:00",
			End:         "2026-02-20T13:00:00",
			Category:    "coding",
			Color:       "#10b981",
			Description: "Fix login bug (#47) and review Aarav's PR",
		},
		{
			Id:          "c4",
			Title:       "🍽️ Lunch Break",
			Start:       "2026-02-20T13:00:00",
			End:         "2026-02-20T14:00:00",
			Category:    "break",
			Color:       "#94a3b8",
			Description: "Recharge!",
		},
		{
			Id:          "c5",
			Title:       "🌳 Data Structures Class",
			Start:       "2026-02-20T14:00:00",
			End:         "2026-02-20T15:30:00",
			Category:    "study",
			Color:       "#6366f1",
			Description: "Binary tree traversal",
			GradeImpact: "medium",
		},
		{
			Id:          "c6",
			Title:       "📚 Exam Prep — Linear Algebra",
			Start:       "2026-02-20T16:00:00",
			End:         "2026-02-20T18:00:00",
			Category:    "study",
			Color:       "#f59e0b",
			Description: "Practice problems for Friday exam",
			GradeImpact: "high",
		},
		{
			Id:          "c7",
			Title:       "💻 Startup — Landing Page",
			Start:       "2026-02-20T19:00:00",
			End:         "2026-02-20T21:00:00",
			Category:    "coding",
			Color:       "#10b981",
			Description: "Implement hero section and CTA",
		},
		{
			Id:          "c8",
			Title:       "📝 Daily Reflection & Planning",
			Start:       "2026-02-20T21:30:00",
			End:         "2026-02-20T22:00:00",
			Category:    "study",
			Color:       "#8b5cf6",
			Description: "Review day, prep tomorrow",
		},
	}
}

func demoProjects() []dto.ProjectResponse {
	return []dto.ProjectResponse{
		{
			Id:          "p1",
			Name:        "Auth & Onboarding",
			Status:      "active",
			Progress:    87,
			Description: "User authentication with OAuth, email verification, and onboarding wizard.",
			TeamMembers: []string{"Nakul", "Aarav", "Priya"},
			LastUpdated: "2 hours ago",
			TechStack:   []string{"React", "FastAPI", "PostgreSQL"},
		},
		{
			Id:          "p2",
			Name:        "Payment Integration",
			Status:      "active",
			Progress:    45,
			Description: "Stripe payment flow with subscription management and invoicing.",
			TeamMembers: []string{"Aarav", "Riya"},
			LastUpdated: "30 min ago",
			TechStack:   []string{"Stripe API", "Node.js", "MongoDB"},
		},
		{
			Id:          "p3",
			Name:        "Landing Page v2",
			Status:      "paused",
			Progress:    30,
			Description: "New landing page with updated branding, testimonials, and pricing.",
			TeamMembers: []string{"Priya"},
			LastUpdated: "1 day ago",
			TechStack:   []string{"Next.js", "Tailwind", "Framer Motion"},
		},
	}
}

func demoUpdates() []dto.UpdateFeedItemResponse {
	return []dto.UpdateFeedItemResponse{
		{
			Id:        "u1",
			Message:   "Login flow PR merged and deployed to staging",
			Source:    "github",
			Timestamp: "30 min ago",
			Project:   "Auth & Onboarding",
			Verified:  true,
		},
		{
			Id:        "u2",
			Message:   "Aarav: 'Stripe webhook is intermittently failing on retry'",
			Source:    "slack",
			Timestamp: "1 hour ago",
			Project:   "Payment Integration",
			Verified:  false,
		},
		{
			Id:        "u3",
			Message:   "Competitor 'BuildFast' launched freemium tier — pricing impact TBD",
			Source:    "notion",
			Timestamp: "2 hours ago",
			Verified:  true,
		},
		{
			Id:        "u4",
			Message:   "Design specs updated for onboarding wizard step 3",
			Source:    "notion",
			Timestamp: "3 hours ago",
			Project:   "Auth & Onboarding",
			Verified:  true,
		},
		{
			Id:        "u5",
			Message:   "Weekly investor update email sent successfully",
			Source:    "gmail",
			Timestamp: "5 hours ago",
			Verified:  true,
		},
		{
			Id:        "u6",
			Message:   "CI pipeline passed — 94% test coverage on auth module",
			Source:    "github",
			Timestamp: "6 hours ago",
			Project:   "Auth & Onboarding",
			Verified:  true,
		},
	}
}

func demoPriorities() []dto.PriorityResponse {
	return []dto.PriorityResponse{
		{
			Id:          "pr1",
			Title:       "Fix Stripe webhook retry logic",
			Urgency:     "critical",
			Project:     "Payment Integration",
			AssignedTo:  "Aarav",
			AIReasoning: "3 failed webhook events in the last hour. Revenue-blocking if not resolved.",
		},
		{
			Id:          "pr2",
			Title:       "Respond to BuildFast pricing change",
			Urgency:     "high",
			Project:     "Strategy",
			AssignedTo:  "Nakul",
			AIReasoning: "Competitor launched freemium. Need to evaluate pricing before investor call.",
		},
		{
			Id:          "pr3",
			Title:       "Unblock landing page — get copy from marketing",
			Urgency:     "high",
			Project:     "Landing Page v2",
			AssignedTo:  "Priya",
			AIReasoning: "On critical path for launch. 2 days behind schedule.",
		},
		{
			Id:          "pr4",
			Title:       "Complete onboarding wizard step 3",
			Urgency:     "medium",
			Project:     "Auth & Onboarding",
			AssignedTo:  "Nakul",
			AIReasoning: "Design specs ready. Can be done in ~3 hours.",
		},
		{
			Id:          "pr5",
			Title:       "Set up error monitoring dashboard",
			Urgency:     "low",
			Project:     "Infrastructure",
			AIReasoning: "Good to have before launch, but not blocking anything.",
		},
	}
}
