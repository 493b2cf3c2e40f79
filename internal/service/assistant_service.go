package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ai-writing-assistant-be/internal/constant"
	"ai-writing-assistant-be/internal/dto"
	"ai-writing-assistant-be/internal/pkg/logger"
	"ai-writing-assistant-be/internal/repository/memory"
	assistantEvents "ai-writing-assistant-be/pkg/assistant/events" // Renamed to avoid collision
	"ai-writing-assistant-be/pkg/assistant/template"
	"ai-writing-assistant-be/pkg/clipboard"
	"ai-writing-assistant-be/pkg/llm"
	"ai-writing-assistant-be/pkg/store"
	"ai-writing-assistant-be/pkg/utils"
)

// IAssistantService defines the writing assistant service interface
type IAssistantService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetState(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error)
	SelectMode(ctx context.Context, sessionId uuid.UUID, request *dto.SelectModeRequest) (*dto.SessionStateResponse, error)
	UpdateDraft(ctx context.Context, sessionId uuid.UUID, request *dto.UpdateDraftRequest) (*dto.UpdateDraftResponse, error)
	ApplyTemplate(ctx context.Context, sessionId uuid.UUID, request *dto.ApplyTemplateRequest) (*dto.ApplyTemplateResponse, error)
	Submit(ctx context.Context, sessionId uuid.UUID, request *dto.SubmitRequest) (*dto.SubmitResponse, error)
	Reset(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error)
	GetHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.HistoryEntryDTO, error)
	ReplayHistory(ctx context.Context, sessionId uuid.UUID, index int) (*dto.SessionStateResponse, error)
	CopyHistoryOutput(ctx context.Context, sessionId uuid.UUID, index int) (*dto.CopyResponse, error)
	CopyText(ctx context.Context, sessionId uuid.UUID, request *dto.CopyTextRequest) (*dto.CopyResponse, error)
	ListModes(ctx context.Context) []*dto.ModeDTO
	ListTemplates(ctx context.Context, modeFilter string) ([]*dto.TemplateDTO, error)
}

// assistantService coordinates the session store, the generation provider
// and the event publisher.
type assistantService struct {
	sessionRepo *memory.SessionRepository
	llmProvider llm.LLMProvider
	clipboard   *clipboard.Service
	events      assistantEvents.Publisher
	logger      logger.ILogger
	genTimeout  time.Duration
}

// NewAssistantService creates a new assistant service
func NewAssistantService(
	sessionRepo *memory.SessionRepository,
	llmProvider llm.LLMProvider,
	clipboardSvc *clipboard.Service,
	eventPublisher assistantEvents.Publisher,
	log logger.ILogger,
	generationTimeout time.Duration,
) IAssistantService {
	return &assistantService{
		sessionRepo: sessionRepo,
		llmProvider: llmProvider,
		clipboard:   clipboardSvc,
		events:      eventPublisher,
		logger:      log,
		genTimeout:  generationTimeout,
	}
}

// CreateSession opens a fresh session on the mode-selection screen.
func (s *assistantService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := store.NewSession()
	s.sessionRepo.Save(session)

	s.logger.Info("AssistantService", "Session created", map[string]interface{}{"session_id": session.ID})
	s.events.PublishSessionCreated(ctx, session.ID)

	return &dto.CreateSessionResponse{
		Id:        session.ID,
		CreatedAt: session.CreatedAt,
	}, nil
}

// GetState renders the full session state the UI draws from.
func (s *assistantService) GetState(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error) {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return nil, err
	}
	return s.stateResponse(session), nil
}

// SelectMode pins the session to a mode and seeds the assistant greeting.
func (s *assistantService) SelectMode(ctx context.Context, sessionId uuid.UUID, request *dto.SelectModeRequest) (*dto.SessionStateResponse, error) {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return nil, err
	}

	mode, err := store.ParseMode(request.Mode)
	if err != nil {
		return nil, err
	}

	greeting := fmt.Sprintf(constant.ModeGreetingFormat, mode.Title())
	if err := session.SelectMode(mode, greeting); err != nil {
		return nil, err
	}
	s.sessionRepo.Save(session)

	s.logger.Info("AssistantService", "Mode selected", map[string]interface{}{"session_id": sessionId, "mode": string(mode)})
	s.events.PublishModeSelected(ctx, sessionId, mode)

	return s.stateResponse(session), nil
}

// UpdateDraft stores the editor text. Draft edits are deliberately not
// published as events; they would flood the feed on every keystroke.
func (s *assistantService) UpdateDraft(ctx context.Context, sessionId uuid.UUID, request *dto.UpdateDraftRequest) (*dto.UpdateDraftResponse, error) {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return nil, err
	}

	session.SetDraft(request.Draft)
	s.sessionRepo.Save(session)

	return &dto.UpdateDraftResponse{
		Draft:     request.Draft,
		WordCount: utils.CountWords(request.Draft),
	}, nil
}

// ApplyTemplate rewrites the draft through one of the mode's templates.
func (s *assistantService) ApplyTemplate(ctx context.Context, sessionId uuid.UUID, request *dto.ApplyTemplateRequest) (*dto.ApplyTemplateResponse, error) {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return nil, err
	}

	mode, ok := session.Mode()
	if !ok {
		return nil, store.ErrModeNotSet
	}

	draft, err := template.Apply(mode, request.Template, session.Draft())
	if err != nil {
		return nil, err
	}

	session.SetDraft(draft)
	s.sessionRepo.Save(session)

	s.events.PublishTemplateApplied(ctx, sessionId, mode, request.Template)

	return &dto.ApplyTemplateResponse{
		Template:  request.Template,
		Draft:     draft,
		WordCount: utils.CountWords(draft),
	}, nil
}

// Submit dispatches the draft to the generation provider under the session's
// mode. Preconditions and the single-flight latch are checked atomically by
// BeginSubmission; on failure nothing but the latch changes.
func (s *assistantService) Submit(ctx context.Context, sessionId uuid.UUID, request *dto.SubmitRequest) (*dto.SubmitResponse, error) {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return nil, err
	}

	// Sync the textarea into the session before dispatching, the way the
	// editor always saves the draft ahead of a submit.
	if request != nil && request.Draft != "" {
		session.SetDraft(request.Draft)
	}

	input, mode, err := session.BeginSubmission()
	if err != nil {
		return nil, err
	}
	s.sessionRepo.Save(session)

	s.events.PublishProcessingStarted(ctx, sessionId, mode)

	genCtx := ctx
	if s.genTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.genTimeout)
		defer cancel()
	}

	started := time.Now()
	output, err := s.llmProvider.Generate(genCtx, buildPrompt(mode, input))
	if err != nil {
		session.AbortSubmission()
		s.sessionRepo.Save(session)

		s.logger.Error("AssistantService", "Generation failed", map[string]interface{}{
			"session_id": sessionId,
			"mode":       string(mode),
			"error":      err.Error(),
		})
		s.events.PublishSubmissionFailed(ctx, sessionId, mode, err.Error())
		return nil, err
	}

	entry, ok := session.CompleteSubmission(input, output, mode)
	s.sessionRepo.Save(session)
	if !ok {
		// The session was reset while the model was generating.
		s.logger.Warn("AssistantService", "Submission finished after reset, result discarded", map[string]interface{}{"session_id": sessionId})
		return nil, store.ErrModeNotSet
	}

	s.logger.Info("AssistantService", "Generation succeeded", map[string]interface{}{
		"session_id":  sessionId,
		"mode":        string(mode),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	s.events.PublishSubmissionCompleted(ctx, sessionId, mode, utils.CountWords(entry.Output))

	return &dto.SubmitResponse{
		SessionId: sessionId,
		Mode:      string(mode),
		Sent:      &dto.MessageDTO{Role: store.RoleUser, Content: entry.Input, CreatedAt: entry.CreatedAt},
		Reply:     &dto.MessageDTO{Role: store.RoleAssistant, Content: entry.Output, CreatedAt: entry.CreatedAt},
	}, nil
}

// Reset returns the session to the mode-selection screen, keeping history.
func (s *assistantService) Reset(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error) {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return nil, err
	}

	session.Reset()
	s.sessionRepo.Save(session)

	s.logger.Info("AssistantService", "Session reset", map[string]interface{}{"session_id": sessionId})
	s.events.PublishSessionReset(ctx, sessionId)

	return s.stateResponse(session), nil
}

// GetHistory lists retained submissions, newest first.
func (s *assistantService) GetHistory(ctx context.Context, sessionId uuid.UUID) ([]*dto.HistoryEntryDTO, error) {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return nil, err
	}

	entries := session.HistoryEntries()
	out := make([]*dto.HistoryEntryDTO, 0, len(entries))
	for i, entry := range entries {
		d := historyDTO(i, entry)
		out = append(out, &d)
	}
	return out, nil
}

// ReplayHistory loads a past input back into the editor.
func (s *assistantService) ReplayHistory(ctx context.Context, sessionId uuid.UUID, index int) (*dto.SessionStateResponse, error) {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return nil, err
	}

	entry, err := session.ReplayHistory(index)
	if err != nil {
		return nil, err
	}
	s.sessionRepo.Save(session)

	s.logger.Info("AssistantService", "History entry replayed", map[string]interface{}{"session_id": sessionId, "index": index})
	s.events.PublishHistoryReplayed(ctx, sessionId, index, entry.Mode)

	return s.stateResponse(session), nil
}

// CopyHistoryOutput copies a stored output to the host clipboard.
func (s *assistantService) CopyHistoryOutput(ctx context.Context, sessionId uuid.UUID, index int) (*dto.CopyResponse, error) {
	session, err := s.loadSession(sessionId)
	if err != nil {
		return nil, err
	}

	entry, err := session.HistoryAt(index)
	if err != nil {
		return nil, err
	}

	return s.copy(sessionId, entry.Output), nil
}

// CopyText copies arbitrary client-supplied text to the host clipboard.
func (s *assistantService) CopyText(ctx context.Context, sessionId uuid.UUID, request *dto.CopyTextRequest) (*dto.CopyResponse, error) {
	if _, err := s.loadSession(sessionId); err != nil {
		return nil, err
	}
	return s.copy(sessionId, request.Text), nil
}

// ListModes exposes the mode keys and display titles for the home screen.
func (s *assistantService) ListModes(ctx context.Context) []*dto.ModeDTO {
	modes := store.Modes()
	out := make([]*dto.ModeDTO, 0, len(modes))
	for _, mode := range modes {
		out = append(out, &dto.ModeDTO{Key: string(mode), Title: mode.Title()})
	}
	return out
}

// ListTemplates lists the template buttons, optionally for a single mode.
func (s *assistantService) ListTemplates(ctx context.Context, modeFilter string) ([]*dto.TemplateDTO, error) {
	modes := store.Modes()
	if modeFilter != "" {
		mode, err := store.ParseMode(modeFilter)
		if err != nil {
			return nil, err
		}
		modes = []store.Mode{mode}
	}

	var out []*dto.TemplateDTO
	for _, mode := range modes {
		for _, tpl := range template.ListByMode(mode) {
			out = append(out, &dto.TemplateDTO{
				Name:    tpl.Name,
				Mode:    string(tpl.Mode),
				Pattern: tpl.Pattern,
			})
		}
	}
	return out, nil
}

// --- Helpers ---

func (s *assistantService) loadSession(sessionId uuid.UUID) (*store.Session, error) {
	session, found := s.sessionRepo.Get(sessionId)
	if !found {
		return nil, store.ErrSessionNotFound
	}
	return session, nil
}

func (s *assistantService) copy(sessionId uuid.UUID, text string) *dto.CopyResponse {
	copied := s.clipboard.Copy(text)
	if !copied {
		s.logger.Warn("AssistantService", "System clipboard unavailable, returning text only", map[string]interface{}{"session_id": sessionId})
	}
	return &dto.CopyResponse{Copied: copied, Text: text}
}

func (s *assistantService) stateResponse(session *store.Session) *dto.SessionStateResponse {
	snap := session.Snapshot()

	messages := make([]dto.MessageDTO, 0, len(snap.Transcript))
	for _, msg := range snap.Transcript {
		messages = append(messages, dto.MessageDTO{
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}

	history := make([]dto.HistoryEntryDTO, 0, len(snap.History))
	for i, entry := range snap.History {
		history = append(history, historyDTO(i, entry))
	}

	res := &dto.SessionStateResponse{
		Id:         snap.ID,
		Messages:   messages,
		Draft:      snap.Draft,
		WordCount:  utils.CountWords(snap.Draft),
		Processing: snap.Processing,
		History:    history,
		CreatedAt:  snap.CreatedAt,
		UpdatedAt:  snap.UpdatedAt,
	}
	if snap.Mode != "" {
		res.Mode = string(snap.Mode)
		res.ModeTitle = snap.Mode.Title()
	}
	return res
}

func historyDTO(index int, entry store.HistoryEntry) dto.HistoryEntryDTO {
	return dto.HistoryEntryDTO{
		Index:     index,
		Input:     entry.Input,
		Output:    entry.Output,
		Mode:      string(entry.Mode),
		Timestamp: entry.CreatedAt.Format(constant.HistoryTimeFormat),
	}
}

// systemPromptFor returns the fixed instruction block for a mode. The
// surrounding newlines are part of the prompt the model receives.
func systemPromptFor(mode store.Mode) string {
	switch mode {
	case store.ModeGrammar:
		return constant.GrammarSystemPrompt
	case store.ModeContent:
		return constant.ContentSystemPrompt
	case store.ModeSynonym:
		return constant.SynonymSystemPrompt
	}
	return ""
}

func buildPrompt(mode store.Mode, draft string) string {
	return fmt.Sprintf("%s\n\n%s", systemPromptFor(mode), draft)
}
