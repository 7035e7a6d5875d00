package service

import (
	"context"
	"regexp"
	"time"

	"ai-videobrain-be/internal/config"
	"ai-videobrain-be/internal/dto"
	"ai-videobrain-be/internal/entity"
	"ai-videobrain-be/internal/pkg/logger"
	"ai-videobrain-be/internal/repository/memory"
	"ai-videobrain-be/internal/repository/unitofwork"
	"ai-videobrain-be/internal/websocket"
	"ai-videobrain-be/pkg/brain"
	"ai-videobrain-be/pkg/brain/orchestrator"
	"ai-videobrain-be/pkg/events"
	"ai-videobrain-be/pkg/llm"
	pktNats "ai-videobrain-be/pkg/nats"
	"ai-videobrain-be/pkg/store"

	"github.com/google/uuid"
)

const historyWindow = 10

type IBrainService interface {
	Decide(ctx context.Context, userId uuid.UUID, req *dto.DecideRequest) (*dto.DecideResponse, error)
	History(ctx context.Context, userId uuid.UUID, projectId uuid.UUID) ([]*dto.ChatMessageResponse, error)
}

type brainService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessionRepo    *memory.SessionRepository
	orchestrator   *orchestrator.Orchestrator
	wsHub          *websocket.Hub
	eventPublisher *pktNats.Publisher
	sysLogger      logger.ILogger
	brainCfg       config.BrainConfig
}

func NewBrainService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.SessionRepository,
	orch *orchestrator.Orchestrator,
	wsHub *websocket.Hub,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
	brainCfg config.BrainConfig,
) IBrainService {
	return &brainService{
		uowFactory:     uowFactory,
		sessionRepo:    sessionRepo,
		orchestrator:   orch,
		wsHub:          wsHub,
		eventPublisher: eventPublisher,
		sysLogger:      sysLogger,
		brainCfg:       brainCfg,
	}
}

func (s *brainService) Decide(ctx context.Context, userId uuid.UUID, req *dto.DecideRequest) (*dto.DecideResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	history, err := uow.ChatMessageRepository().FindRecent(ctx, req.ProjectId, historyWindow)
	if err != nil {
		s.sysLogger.Warn("Brain", "Chat history load failed, continuing without it", map[string]interface{}{
			"project_id": req.ProjectId,
			"error":      err.Error(),
		})
		history = nil
	}

	imageUrls, videoUrls := s.recallAttachments(userId, req)

	brainReq := &brain.Request{
		Prompt:    req.Prompt,
		ProjectID: req.ProjectId,
		UserID:    userId,
		Context: brain.UserContext{
			AttachedImageURLs:      imageUrls,
			AttachedVideoURLs:      videoUrls,
			AttachedSceneID:        req.AttachedSceneId,
			SelectedSceneID:        req.SelectedSceneId,
			// Server-side toggles enable the features for every request; the
			// per-request flags can only opt in, not opt out.
			SourceToVideoEnabled:   req.SourceToVideoEnabled || s.brainCfg.SourceToVideoEnabled,
			ComponentLookupEnabled: req.ComponentLookupEnabled || s.brainCfg.ComponentLookupEnabled,
		},
		History: toLLMMessages(history),
	}
	if s.wsHub != nil {
		projectId := req.ProjectId.String()
		brainReq.Progress = func(stage string) {
			s.wsHub.SendProgress(userId, dto.ProgressEvent{
				ProjectId: projectId,
				Stage:     stage,
			})
		}
	}

	outcome := s.orchestrator.Process(ctx, brainReq)

	s.persistTurn(ctx, userId, req, outcome)
	s.publishDecision(ctx, userId, req.ProjectId, outcome)
	s.saveSession(userId, req, outcome)

	return toDecideResponse(outcome), nil
}

func (s *brainService) History(ctx context.Context, userId uuid.UUID, projectId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindRecent(ctx, projectId, 50)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ChatMessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = &dto.ChatMessageResponse{
			Id:        m.Id,
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
	}
	return responses, nil
}

// persistTurn records the user prompt and the assistant's reply as one
// conversation exchange. Persistence failures are logged, never surfaced; the
// decision already happened.
func (s *brainService) persistTurn(ctx context.Context, userId uuid.UUID, req *dto.DecideRequest, outcome *brain.Outcome) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		s.sysLogger.Warn("Brain", "Conversation persistence skipped", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer uow.Rollback()

	now := time.Now()
	userMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      entity.ChatRoleUser,
		Content:   req.Prompt,
		ProjectId: req.ProjectId,
		UserId:    userId,
		CreatedAt: now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		s.sysLogger.Warn("Brain", "Failed to persist user turn", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	assistantMsg := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      entity.ChatRoleAssistant,
		Content:   outcome.UserMessage,
		ProjectId: req.ProjectId,
		UserId:    userId,
		CreatedAt: now.Add(time.Millisecond),
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMsg); err != nil {
		s.sysLogger.Warn("Brain", "Failed to persist assistant turn", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := uow.Commit(); err != nil {
		s.sysLogger.Warn("Brain", "Conversation commit failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// publishDecision emits accepted decisions for the tool executor. Failures and
// clarification turns produce nothing to execute, so nothing is published.
func (s *brainService) publishDecision(ctx context.Context, userId uuid.UUID, projectId uuid.UUID, outcome *brain.Outcome) {
	if s.eventPublisher == nil || outcome.Failed || outcome.Decision == nil || outcome.Decision.NeedsClarification {
		return
	}

	data := map[string]interface{}{
		"user_id":          userId,
		"project_id":       projectId,
		"tool":             outcome.Decision.Tool,
		"effective_prompt": outcome.EffectivePrompt,
	}
	if outcome.Decision.TargetSceneID != nil {
		data["target_scene_id"] = *outcome.Decision.TargetSceneID
	}
	if outcome.Decision.DurationFrames > 0 {
		data["duration_frames"] = outcome.Decision.DurationFrames
	}
	if len(outcome.Decision.Workflow) > 0 {
		data["workflow_steps"] = len(outcome.Decision.Workflow)
	}

	if err := s.eventPublisher.Publish(ctx, events.NewDecisionMade(data)); err != nil {
		s.sysLogger.Warn("Brain", "Failed to publish decision event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// recallAttachments restores the previous turn's media when the user refers
// back to it ("use the image I sent") after the upload widget was cleared.
// Literal attachments on this turn always win.
func (s *brainService) recallAttachments(userId uuid.UUID, req *dto.DecideRequest) ([]string, []string) {
	if len(req.AttachedImageUrls) > 0 || len(req.AttachedVideoUrls) > 0 {
		return req.AttachedImageUrls, req.AttachedVideoUrls
	}
	if s.sessionRepo == nil || !referencesPriorMedia(req.Prompt) {
		return nil, nil
	}
	session, ok := s.sessionRepo.Get(store.Key(req.ProjectId.String(), userId.String()))
	if !ok {
		return nil, nil
	}
	return session.LastImageURLs, session.LastVideoURLs
}

// Matches back-references to media from an earlier turn. Kept narrow so stale
// session media is never pulled into a fresh request.
var priorMediaPattern = regexp.MustCompile(`(?i)\b(?:i\s+(?:sent|uploaded|attached|shared)|(?:that|the\s+same|the\s+previous|my\s+earlier)\s+(?:image|picture|photo|screenshot|video|clip))\b`)

func referencesPriorMedia(prompt string) bool {
	return brain.HasMediaIntent(prompt) && priorMediaPattern.MatchString(prompt)
}

// saveSession keeps short-term continuity state for follow-up turns.
func (s *brainService) saveSession(userId uuid.UUID, req *dto.DecideRequest, outcome *brain.Outcome) {
	if s.sessionRepo == nil || outcome.Failed {
		return
	}

	session := &store.Session{
		ID:         store.Key(req.ProjectId.String(), userId.String()),
		UserID:     userId.String(),
		ProjectID:  req.ProjectId.String(),
		LastPrompt: req.Prompt,
	}
	if outcome.Decision != nil && !outcome.Decision.NeedsClarification {
		session.LastTool = outcome.Decision.Tool
		if outcome.Decision.TargetSceneID != nil {
			session.LastTargetSceneID = outcome.Decision.TargetSceneID.String()
		}
	}
	if len(req.AttachedImageUrls) > 0 {
		session.LastImageURLs = req.AttachedImageUrls
	}
	if len(req.AttachedVideoUrls) > 0 {
		session.LastVideoURLs = req.AttachedVideoUrls
	}
	s.sessionRepo.Save(session)
}

func toLLMMessages(messages []*entity.ChatMessage) []llm.Message {
	out := make([]llm.Message, len(messages))
	for i, m := range messages {
		out[i] = llm.Message{Role: m.Role, Content: m.Content}
	}
	return out
}

func toDecideResponse(outcome *brain.Outcome) *dto.DecideResponse {
	resp := &dto.DecideResponse{
		UserMessage: outcome.UserMessage,
		Failed:      outcome.Failed,
	}
	if outcome.Decision == nil {
		return resp
	}

	d := outcome.Decision
	resp.Tool = d.Tool
	resp.NeedsClarification = d.NeedsClarification
	resp.Question = d.Question
	resp.TargetSceneId = d.TargetSceneID
	resp.ReferencedSceneIds = d.ReferencedSceneIDs
	resp.DurationFrames = d.DurationFrames
	resp.SourceUrl = d.SourceURL
	resp.ImageAction = string(d.ImageAction)

	for _, step := range d.Workflow {
		resp.Workflow = append(resp.Workflow, dto.WorkflowStepResponse{
			Tool:          step.Tool,
			Context:       step.Context,
			TargetSceneId: step.TargetSceneID,
			DependsOnPrev: step.DependsOnPrev,
		})
	}

	if outcome.ResolvedMedia != nil {
		rm := &dto.ResolvedMediaResponse{
			ImageUrls:  outcome.ResolvedMedia.ImageURLs,
			VideoUrls:  outcome.ResolvedMedia.VideoURLs,
			Suppressed: outcome.ResolvedMedia.Suppressed,
		}
		for _, dir := range outcome.ResolvedMedia.Directives {
			rm.Directives = append(rm.Directives, dto.ResolvedDirectiveResponse{
				Url:       dir.URL,
				Action:    string(dir.Action),
				Placement: dir.Placement,
			})
		}
		resp.ResolvedMedia = rm
	}
	return resp
}
