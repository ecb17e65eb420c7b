// Package agent drives the multi-round exchange between the model and the
// capability registry: invoke the model with the conversation, execute any
// requested capabilities, append results, repeat until the model produces a
// plain reply or the round cap is hit.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hospital-agent/config"
	apperrors "hospital-agent/errors"
	"hospital-agent/session"
	"hospital-agent/tools"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// AssistantRole is the role marker carried by every outbound reply.
const AssistantRole = "assistant"

// forcedSettleReply is what the user sees when the model keeps requesting
// capabilities past the round cap.
const forcedSettleReply = "I wasn't able to finish looking that up. Could you rephrase or narrow down your request?"

// Reply is the settled result of one exchange.
type Reply struct {
	Content   string
	ID        string
	Role      string
	CreatedAt time.Time
}

type Agent struct {
	cfg      *config.Config
	model    llms.Model
	registry *tools.Registry
	sessions *session.Store
	toolDefs []llms.Tool
	logger   *zap.Logger
}

func New(cfg *config.Config, model llms.Model, registry *tools.Registry, sessions *session.Store, logger *zap.Logger) *Agent {
	logger.Info("Agent initialized",
		zap.Int("max_tool_rounds", cfg.MaxToolRounds),
		zap.Strings("capabilities", registry.Names()))

	return &Agent{
		cfg:      cfg,
		model:    model,
		registry: registry,
		sessions: sessions,
		toolDefs: tools.Definitions(),
		logger:   logger,
	}
}

// HandleMessage appends the user message to the session and runs rounds
// until the model settles. The session stays exclusively owned for the full
// exchange. Capability failures never abort the loop; only a failed model
// invocation surfaces as an error.
func (a *Agent) HandleMessage(ctx context.Context, userID, message string) (*Reply, error) {
	sess := a.sessions.Acquire(userID)
	defer sess.Release()

	sess.Append(llms.TextParts(llms.ChatMessageTypeHuman, message))

	var finalText string
	settled := false
	for round := 0; round < a.cfg.MaxToolRounds; round++ {
		llmCtx, cancel := context.WithTimeout(ctx, a.cfg.LLMRequestTimeout)
		resp, err := a.model.GenerateContent(llmCtx, sess.Messages(), llms.WithTools(a.toolDefs))
		cancel()
		if err != nil {
			a.logger.Error("Model invocation failed",
				zap.String("user_id", userID),
				zap.Int("round", round),
				zap.Error(err))
			return nil, apperrors.WrapError(apperrors.ErrLLMCommunication, err.Error())
		}
		if len(resp.Choices) == 0 {
			return nil, apperrors.WrapError(apperrors.ErrLLMCommunication, "model returned no choices")
		}

		choice := resp.Choices[0]
		calls := pendingCalls(choice)
		sess.Append(assistantMessage(choice, calls))

		if len(calls) == 0 {
			finalText = choice.Content
			settled = true
			break
		}

		a.logger.Debug("Executing capability requests",
			zap.String("user_id", userID),
			zap.Int("round", round),
			zap.Int("count", len(calls)))

		// One ToolResult per request, in the order the model listed them.
		for _, call := range calls {
			sess.Append(a.executeCall(ctx, call))
		}
	}

	if !settled {
		a.logger.Warn("Round cap reached, forcing settle",
			zap.String("user_id", userID),
			zap.Int("max_tool_rounds", a.cfg.MaxToolRounds))
		finalText = forcedSettleReply
		sess.Append(llms.TextParts(llms.ChatMessageTypeAI, finalText))
	}

	return &Reply{
		Content:   finalText,
		ID:        fmt.Sprintf("%s_%s_%d", userID, AssistantRole, sess.Len()),
		Role:      AssistantRole,
		CreatedAt: time.Now(),
	}, nil
}

// pendingCalls extracts the round's capability requests. Older providers
// report a single function call instead of a tool-call list.
func pendingCalls(choice *llms.ContentChoice) []llms.ToolCall {
	if len(choice.ToolCalls) > 0 {
		return choice.ToolCalls
	}
	if choice.FuncCall != nil {
		return []llms.ToolCall{{
			Type:         "function",
			FunctionCall: choice.FuncCall,
		}}
	}
	return nil
}

// assistantMessage rebuilds the model's turn as a history entry: its text
// plus the capability requests it carries.
func assistantMessage(choice *llms.ContentChoice, calls []llms.ToolCall) llms.MessageContent {
	var parts []llms.ContentPart
	if choice.Content != "" || len(calls) == 0 {
		parts = append(parts, llms.TextPart(choice.Content))
	}
	for _, call := range calls {
		parts = append(parts, call)
	}
	return llms.MessageContent{Role: llms.ChatMessageTypeAI, Parts: parts}
}

// executeCall runs one capability request and wraps the outcome as a tool
// result message. Unknown names produce an explicit skipped result so the
// model sees every request answered.
func (a *Agent) executeCall(ctx context.Context, call llms.ToolCall) llms.MessageContent {
	var name, args string
	if call.FunctionCall != nil {
		name = call.FunctionCall.Name
		args = call.FunctionCall.Arguments
	}
	id := call.ID
	if id == "" {
		id = uuid.New().String()
	}

	result, known := a.registry.Execute(ctx, name, json.RawMessage(args))
	if !known {
		result = fmt.Sprintf("skipped: unknown capability %q", name)
	}

	return llms.MessageContent{
		Role: llms.ChatMessageTypeTool,
		Parts: []llms.ContentPart{
			llms.ToolCallResponse{
				ToolCallID: id,
				Name:       name,
				Content:    result,
			},
		},
	}
}
