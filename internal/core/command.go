package core

import (
	"context"

	"go.uber.org/zap"
)

// categoryPrecedence fixes the option-index ordering the host uses:
// index 0 is phishing, 1 is spam, 2 is notJunk. The first true flag in this
// order wins. The host gives no enumeration-order guarantee on the options
// map, so the precedence must stay index-based.
var categoryPrecedence = []Category{
	CategoryPhishing,
	CategorySpam,
	CategoryNotJunk,
}

// Initializer prepares the authentication subsystem before a submission.
// Calling it repeatedly must be safe.
type Initializer interface {
	Initialize(ctx context.Context) error
}

// CommandHandler handles a report action raised by the host UI. It runs a
// single event to completion and sends the completion signal exactly once,
// on every path.
type CommandHandler struct {
	service *ThreatReportService
	logger  *zap.Logger
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(service *ThreatReportService, logger *zap.Logger) *CommandHandler {
	return &CommandHandler{
		service: service,
		logger:  logger,
	}
}

// CategoryFromOptions maps the host's option flags to a report category.
// The default is phishing when no flag is set.
func CategoryFromOptions(options map[int]bool) Category {
	for i, category := range categoryPrecedence {
		if options[i] {
			return category
		}
	}
	return CategoryPhishing
}

// Handle runs one command event to completion. Every error is converted
// into a blocked action; error detail stays in the diagnostic log and never
// reaches the host.
func (h *CommandHandler) Handle(
	ctx context.Context,
	event CommandEvent,
	tokens TokenProvider,
	session MailboxSession,
	completed CompletionFunc,
) {
	done := false
	complete := func(result CommandResult) {
		if done {
			return
		}
		done = true
		completed(result)
	}

	if init, ok := tokens.(Initializer); ok {
		if err := init.Initialize(ctx); err != nil {
			h.logger.Error("Auth initialization failed", zap.Error(err))
			complete(CommandResult{AllowEvent: false})
			return
		}
	}

	category := CategoryFromOptions(event.Options)
	h.logger.Debug("Handling report action", zap.String("category", string(category)))

	result, err := h.service.SubmitEmailThreat(ctx, tokens, session, category)
	if err != nil {
		h.logger.Error("Threat report failed",
			zap.String("category", string(category)),
			zap.Error(err))
		complete(CommandResult{AllowEvent: false})
		return
	}

	h.logger.Info("Report action completed",
		zap.String("category", string(result.Report.Category)))
	complete(CommandResult{AllowEvent: true})
}
