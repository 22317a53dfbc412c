// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"velocity-ai-be/internal/dto"
	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/pkg/mailer"
	"velocity-ai-be/internal/repository/specification"
	"velocity-ai-be/internal/repository/unitofwork"
	"velocity-ai-be/pkg/agent/executor"
	"velocity-ai-be/pkg/agent/state"
	"velocity-ai-be/pkg/events"
	"velocity-ai-be/pkg/llm"
	pktNats "velocity-ai-be/pkg/nats"

	"github.com/google/uuid"
)

// System prompts for the direct-chat fallback path. The fixed-topology
// pipeline is the primary route; these are only used when the pipeline
// cannot run at all.
const (
	personalSystemPrompt = "You are Velocity AI, a personal productivity assistant for student founders.\n" +
		"You help balance academic commitments with startup work. You can:\n" +
		"- Prioritize tasks based on deadlines and grade impact\n" +
		"- Schedule study sessions and coding blocks\n" +
		"- Identify when something needs human approval before scheduling\n" +
		"- Provide daily summaries and actionable insights\n\n" +
		"When a user mentions deadlines, exams, or scheduling conflicts, propose a plan and ask for approval.\n" +
		"Always be concise, actionable, and supportive. Use emojis sparingly for friendliness."

	workspaceSystemPrompt = "You are Velocity AI, a workspace intelligence assistant for startup teams.\n" +
		"You help monitor and synthesize information across team tools. You can:\n" +
		"- Summarize project status across Slack, GitHub, Notion, and email\n" +
		"- Re-prioritize backlog items based on new information\n" +
		"- Identify blockers and suggest resolutions\n" +
		"- Track market intelligence and competitive signals\n\n" +
		"Be data-driven, concise, and actionable. Reference sources when synthesizing updates."
)

type IChatService interface {
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	Approve(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) (*dto.ApprovalResponse, error)
	Reject(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) (*dto.ApprovalResponse, error)
}

// chatService is the HTTP-facing entry to the agent pipeline. It owns
// everything the executor deliberately does not: conversation and
// message persistence, the durable pipeline-run archive, the approval
// side effects, and the notification fan-out.
type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	executor       *executor.Executor
	llmProvider    llm.LLMProvider
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	dashboard      IDashboardService
	activity       IActivityService
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	agentExecutor *executor.Executor,
	llmProvider llm.LLMProvider,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	dashboard IDashboardService,
	activity IActivityService,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		executor:       agentExecutor,
		llmProvider:    llmProvider,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		dashboard:      dashboard,
		activity:       activity,
	}
}

// defaultAiDailyLimit caps pipeline runs per user per calendar day.
// Users can carry a per-account override.
const defaultAiDailyLimit = 50

func (cs *chatService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if err := cs.checkAndIncrementDailyUsage(ctx, uow, userId); err != nil {
		return nil, err
	}

	conversation, err := cs.resolveConversation(ctx, uow, userId, req)
	if err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = conversation.Mode
	}
	if mode == "" {
		mode = string(state.ModePersonal)
	}

	now := time.Now()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	userMessage := &entity.ChatMessage{
		Id:             uuid.New(),
		Content:        req.Message,
		Role:           "user",
		ConversationId: conversation.Id,
		CreatedAt:      now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}

	// Run the agent pipeline under the conversation id, so re-running a
	// conversation overwrites its checkpoint rather than forking a new one.
	result, runStatus := cs.runPipeline(ctx, req.Message, mode, conversation.Id.String())

	run := &entity.PipelineRun{
		Id:               uuid.New(),
		RunKey:           conversation.Id.String(),
		UserId:           &userId,
		Mode:             string(result.Mode),
		UserInput:        req.Message,
		Summary:          result.Summary,
		RequiresApproval: result.RequiresApproval,
		ApprovalStatus:   string(state.ApprovalNone),
		Sources:          result.Sources,
		Status:           runStatus,
		CreatedAt:        now,
	}
	if result.RequiresApproval {
		run.ApprovalStatus = string(state.ApprovalPending)
	}
	if result.ProposedAction != nil {
		run.ActionType = result.ProposedAction.Type
		run.ActionDescription = result.ProposedAction.Description
		run.ActionStatus = result.ProposedAction.Status
	}
	if err := uow.PipelineRunRepository().Create(ctx, run); err != nil {
		return nil, err
	}

	assistantMessage := &entity.ChatMessage{
		Id:             uuid.New(),
		Content:        result.Summary,
		Role:           "assistant",
		ConversationId: conversation.Id,
		PipelineRunId:  &run.Id,
		CreatedAt:      now.Add(1 * time.Second),
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if result.RequiresApproval {
		cs.notifyApprovalRequested(ctx, uow, userId, conversation.Id, result.ProposedAction)
	}
	cs.publishEvent(ctx, "AGENT_PIPELINE_COMPLETED", map[string]interface{}{
		"user_id":           userId.String(),
		"conversation_id":   conversation.Id.String(),
		"mode":              string(result.Mode),
		"requires_approval": result.RequiresApproval,
	})

	resp := &dto.SendChatResponse{
		ConversationId:   conversation.Id,
		Title:            conversation.Title,
		Reply:            result.Summary,
		Mode:             string(result.Mode),
		RequiresApproval: result.RequiresApproval,
		Sources:          result.Sources,
	}
	if result.ProposedAction != nil {
		resp.ProposedAction = &dto.ProposedActionDTO{
			Type:        result.ProposedAction.Type,
			Description: result.ProposedAction.Description,
			Status:      result.ProposedAction.Status,
		}
	}
	return resp, nil
}

// checkAndIncrementDailyUsage resets the counter on a new calendar day,
// rejects when the user is over their limit, and otherwise counts this
// request.
func (cs *chatService) checkAndIncrementDailyUsage(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) error {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	now := time.Now()
	lastReset := user.AiDailyUsageLastReset
	if now.Year() != lastReset.Year() || now.Month() != lastReset.Month() || now.Day() != lastReset.Day() {
		user.AiDailyUsage = 0
		user.AiDailyUsageLastReset = now
	}

	limit := defaultAiDailyLimit
	if user.AiDailyLimitOverride != nil {
		limit = *user.AiDailyLimitOverride
	}
	// Negative override means unlimited.
	if limit >= 0 && user.AiDailyUsage >= limit {
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)
		return &dto.LimitExceededError{
			Limit:      limit,
			Used:       user.AiDailyUsage,
			ResetAfter: midnight,
		}
	}

	user.AiDailyUsage++
	return uow.UserRepository().Update(ctx, user)
}

// resolveConversation loads the requested conversation or starts a new
// one when the request carries no id.
func (cs *chatService) resolveConversation(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, req *dto.SendChatRequest) (*entity.Conversation, error) {
	if req.ConversationId != nil {
		conversation, err := uow.ConversationRepository().FindOne(ctx,
			specification.ByID{ID: *req.ConversationId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if conversation == nil {
			return nil, fmt.Errorf("conversation not found or access denied")
		}
		return conversation, nil
	}

	mode := req.Mode
	if mode == "" {
		mode = string(state.ModePersonal)
	}
	conversation := &entity.Conversation{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "New Chat",
		Mode:      mode,
		CreatedAt: time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}

// runPipeline executes the agent pipeline and falls back to a direct
// single-shot chat when the pipeline cannot run (the alternate entry
// path). Either way the caller gets a usable result.
func (cs *chatService) runPipeline(ctx context.Context, message, mode, runID string) (*state.Result, entity.PipelineRunStatus) {
	result, err := cs.executor.Run(ctx, message, mode, runID)
	if err == nil {
		return result, entity.PipelineRunStatusCompleted
	}

	log.Printf("[WARN] Agent pipeline unavailable (%v), falling back to direct chat", err)
	return cs.directChat(ctx, message, mode), entity.PipelineRunStatusDegraded
}

// directChat is the open-ended path: one LLM turn with the mode's
// system prompt, no fixed topology, no tools.
func (cs *chatService) directChat(ctx context.Context, message, mode string) *state.Result {
	systemPrompt := personalSystemPrompt
	parsedMode := state.ModePersonal
	if mode == string(state.ModeWorkspace) {
		systemPrompt = workspaceSystemPrompt
		parsedMode = state.ModeWorkspace
	}

	reply, err := cs.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: message},
	}, llm.WithTemperature(0.7), llm.WithMaxTokens(1024))
	if err != nil {
		return state.Degraded(parsedMode, fmt.Sprintf("I could not process that request right now (%v). Please try again.", err))
	}

	result := state.Degraded(parsedMode, reply)

	// Without the planner, approval intent has to be inferred from the
	// reply itself.
	if parsedMode == state.ModePersonal && mentionsScheduleChange(reply) {
		result.RequiresApproval = true
		result.ProposedAction = &state.ProposedAction{
			Type:        "schedule_modification",
			Description: "AI wants to modify your schedule based on this conversation.",
			Status:      "pending",
		}
	}
	return result
}

var scheduleChangeMarkers = []string{
	"schedule", "reschedule", "block time", "move your", "i'll set up", "let me arrange",
}

func mentionsScheduleChange(reply string) bool {
	lower := strings.ToLower(reply)
	for _, marker := range scheduleChangeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func (cs *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: conversationId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation not found or access denied")
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetChatHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		resp = append(resp, &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}
	return resp, nil
}

// Approve flips the pending action on the conversation's latest run and
// applies the gated side effect: the proposed schedule is written to the
// calendar only here, never inside the pipeline.
func (cs *chatService) Approve(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) (*dto.ApprovalResponse, error) {
	st, err := cs.executor.Approve(ctx, conversationId.String())
	if err != nil {
		return nil, err
	}

	run, err := cs.recordDecision(ctx, userId, conversationId, st)
	if err != nil {
		return nil, err
	}

	if len(st.ScheduleProposals) > 0 {
		cs.dashboard.AddScheduleBlocks(st.ScheduleProposals)
	}
	if cs.activity != nil {
		cs.activity.Append(ctx, &entity.ActivityEntry{
			UserId:  &userId,
			Action:  "Approved proposed schedule",
			Source:  "approval",
			Mode:    string(st.Mode),
			Details: truncateText(run.ActionDescription, 200),
		})
	}
	cs.publishEvent(ctx, "AGENT_ACTION_DECIDED", map[string]interface{}{
		"user_id":         userId.String(),
		"conversation_id": conversationId.String(),
		"decision":        "approved",
	})

	return &dto.ApprovalResponse{
		Message:        "✅ Action approved! Changes have been applied to your calendar.",
		ApprovalStatus: string(st.ApprovalStatus),
		ProposedAction: proposedActionDTO(st.ProposedAction),
	}, nil
}

// Reject flips the pending action to rejected. No side effect follows.
func (cs *chatService) Reject(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID) (*dto.ApprovalResponse, error) {
	st, err := cs.executor.Reject(ctx, conversationId.String())
	if err != nil {
		return nil, err
	}

	if _, err := cs.recordDecision(ctx, userId, conversationId, st); err != nil {
		return nil, err
	}

	if cs.activity != nil {
		cs.activity.Append(ctx, &entity.ActivityEntry{
			UserId: &userId,
			Action: "Rejected proposed schedule",
			Source: "approval",
			Mode:   string(st.Mode),
		})
	}
	cs.publishEvent(ctx, "AGENT_ACTION_DECIDED", map[string]interface{}{
		"user_id":         userId.String(),
		"conversation_id": conversationId.String(),
		"decision":        "rejected",
	})

	return &dto.ApprovalResponse{
		Message:        "❌ Action rejected. No changes were made.",
		ApprovalStatus: string(st.ApprovalStatus),
		ProposedAction: proposedActionDTO(st.ProposedAction),
	}, nil
}

// recordDecision syncs the durable run archive with the decided
// checkpoint state.
func (cs *chatService) recordDecision(ctx context.Context, userId uuid.UUID, conversationId uuid.UUID, st *state.State) (*entity.PipelineRun, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	run, err := uow.PipelineRunRepository().FindLatestByRunKey(ctx, conversationId.String())
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("no pipeline run recorded for conversation %s", conversationId)
	}
	if run.UserId != nil && *run.UserId != userId {
		return nil, fmt.Errorf("conversation not found or access denied")
	}

	run.ApprovalStatus = string(st.ApprovalStatus)
	run.RequiresApproval = false
	if st.ProposedAction != nil {
		run.ActionStatus = st.ProposedAction.Status
	}
	if err := uow.PipelineRunRepository().Update(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (cs *chatService) notifyApprovalRequested(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, conversationId uuid.UUID, action *state.ProposedAction) {
	description := "A proposed action awaits your approval."
	if action != nil {
		description = action.Description
	}

	// Best-effort email; the in-app surface already carries the gate.
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		log.Printf("[WARN] Approval email skipped: user lookup failed: %v", err)
	} else if err := cs.emailService.SendApprovalRequest(user.Email, description, conversationId.String()); err != nil {
		log.Printf("[WARN] Approval email failed: %v", err)
	}

	cs.publishEvent(ctx, "AGENT_APPROVAL_REQUESTED", map[string]interface{}{
		"user_id":         userId.String(),
		"conversation_id": conversationId.String(),
		"description":     description,
	})
}

func (cs *chatService) publishEvent(ctx context.Context, eventType string, payload map[string]interface{}) {
	if cs.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", eventType, err)
	}
}

func proposedActionDTO(action *state.ProposedAction) *dto.ProposedActionDTO {
	if action == nil {
		return nil
	}
	return &dto.ProposedActionDTO{
		Type:        action.Type,
		Description: action.Description,
		Status:      action.Status,
	}
}

func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
