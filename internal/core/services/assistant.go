package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/studyhall-labs/studyhall-cli/internal/core/domain"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/studyhall-cli/internal/core/ports/driving"
	"github.com/studyhall-labs/studyhall-cli/internal/logger"
	"github.com/studyhall-labs/studyhall-cli/internal/tools"
)

// systemPrompt instructs the model on tool usage and response shape.
// Conversation history, when present, is appended to it rather than
// replayed as message turns.
const systemPrompt = `You are an AI assistant specialized in course materials and educational content, with tools for searching course content and retrieving course outlines.

Tool usage:
- search_course_content: for questions about specific course content or detailed educational materials
- get_course_outline: for questions about a course's structure, its lesson list, or its link
- Use at most a few tool calls per question, only when the question needs course material
- If a search yields no results, say so clearly without guessing

Responses:
- Answer general knowledge questions directly from your own knowledge, without tools
- Be brief, concise and focused; no meta-commentary about your search process
- For outline questions, include the course title, the course link, and every lesson's number and title`

// maxAnswerTokens caps generation per dispatch.
const maxAnswerTokens = 800

var _ driving.AssistantService = (*Assistant)(nil)

// Assistant drives the query-answering cycle: it composes the system
// context, runs the bounded tool-calling loop, and records the exchange.
type Assistant struct {
	llm      driven.LLMService
	index    driven.CourseIndex
	sessions driven.SessionStore
	registry *tools.Registry
	settings domain.ChatSettings
}

// NewAssistant creates the answering service.
func NewAssistant(
	llm driven.LLMService,
	index driven.CourseIndex,
	sessions driven.SessionStore,
	registry *tools.Registry,
	settings domain.ChatSettings,
) *Assistant {
	return &Assistant{
		llm:      llm,
		index:    index,
		sessions: sessions,
		registry: registry,
		settings: settings,
	}
}

// Answer runs one full cycle for a query. An empty sessionID mints a
// fresh session; unknown ids start with empty history.
func (a *Assistant) Answer(ctx context.Context, query, sessionID string) (*domain.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query must not be empty", domain.ErrInvalidInput)
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
		logger.Debug("Minted session %s", sessionID)
	}

	system, err := a.composeSystem(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	text, sources, err := a.runToolLoop(ctx, system, query)
	if err != nil {
		return nil, err
	}

	if err := a.sessions.Append(ctx, sessionID, query, text); err != nil {
		return nil, fmt.Errorf("recording exchange: %w", err)
	}

	return &domain.Answer{Text: text, Sources: sources, SessionID: sessionID}, nil
}

// composeSystem builds the system block: static instructions plus the
// rendered conversation history.
func (a *Assistant) composeSystem(ctx context.Context, sessionID string) (string, error) {
	history, err := a.sessions.History(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("loading session history: %w", err)
	}
	if len(history) == 0 {
		return systemPrompt, nil
	}

	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nPrevious conversation:\n")
	for _, ex := range history {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", ex.Query, ex.Response)
	}
	return b.String(), nil
}

// runToolLoop dispatches to the model with tools declared, executes any
// requested tool calls, and repeats up to the configured round limit.
// When the limit is reached with the model still requesting tools, one
// final dispatch without tools forces a textual answer.
func (a *Assistant) runToolLoop(ctx context.Context, system, query string) (string, []domain.Source, error) {
	opts := driven.ChatOptions{MaxTokens: maxAnswerTokens, Temperature: 0}
	messages := []driven.Message{driven.TextMessage(driven.RoleUser, query)}

	var sources []domain.Source

	for round := 0; round < a.settings.MaxToolRounds; round++ {
		resp, err := a.llm.Chat(ctx, system, messages, a.registry.Definitions(), opts)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
		}

		uses := resp.ToolUses()
		if resp.StopReason != driven.StopToolUse || len(uses) == 0 {
			return resp.Text(), sources, nil
		}

		logger.Debug("Tool round %d: %d call(s)", round+1, len(uses))
		messages = append(messages, driven.Message{Role: driven.RoleAssistant, Content: resp.Content})

		results := make([]driven.ContentBlock, 0, len(uses))
		for _, use := range uses {
			text, callSources, err := a.registry.Execute(ctx, use.Name, use.Input)
			block := driven.ContentBlock{Type: driven.ContentToolResult, ToolUseID: use.ID}
			if err != nil {
				// Execution failures go back to the model as error
				// results so it can still answer; only the LLM call
				// itself is fatal to the cycle.
				logger.Warn("Tool %s failed: %v", use.Name, err)
				block.Content = fmt.Sprintf("Tool execution failed: %v", err)
				block.IsError = true
			} else {
				block.Content = text
				sources = a.mergeSources(sources, callSources)
			}
			results = append(results, block)
		}
		messages = append(messages, driven.Message{Role: driven.RoleUser, Content: results})
	}

	// Round budget exhausted: ask for a final answer with no tools.
	resp, err := a.llm.Chat(ctx, system, messages, nil, opts)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}
	return resp.Text(), sources, nil
}

// mergeSources combines a tool call's sources with those already
// collected, per the configured citation mode. A nil set means the
// call contributed no citations; a non-nil empty set is an
// authoritative outcome and, in last mode, clears earlier ones (an
// empty search must not leave stale citations behind).
func (a *Assistant) mergeSources(have, got []domain.Source) []domain.Source {
	if a.settings.Citations == domain.CitationModeLast {
		if got == nil {
			return have
		}
		return got
	}
	if len(got) == 0 {
		return have
	}
	seen := make(map[string]struct{}, len(have))
	for _, s := range have {
		seen[s.Label] = struct{}{}
	}
	for _, s := range got {
		if _, ok := seen[s.Label]; ok {
			continue
		}
		seen[s.Label] = struct{}{}
		have = append(have, s)
	}
	return have
}

// Analytics reports the indexed corpus size and titles.
func (a *Assistant) Analytics(ctx context.Context) (*driving.CourseAnalytics, error) {
	titles, err := a.index.ListCourseTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing course titles: %w", err)
	}
	sort.Strings(titles)
	return &driving.CourseAnalytics{TotalCourses: len(titles), CourseTitles: titles}, nil
}
