package core

import (
	"time"
)

// Category is the threat category a user assigns to a reported email
type Category string

const (
	CategoryPhishing Category = "phishing"
	CategorySpam     Category = "spam"
	CategoryNotJunk  Category = "notJunk"
)

// IsValid reports whether the category is one of the enumerated values
func (c Category) IsValid() bool {
	switch c {
	case CategoryPhishing, CategorySpam, CategoryNotJunk:
		return true
	}
	return false
}

// Report represents a single email threat submission. It is built fresh per
// submission and discarded after the POST completes.
type Report struct {
	Category              Category
	RecipientEmailAddress string
	MessageURL            string
}

// Validate checks that the report is ready to be submitted: all three
// fields non-empty and the category enumerated.
func (r *Report) Validate() error {
	if !r.Category.IsValid() {
		return &SelectionError{Reason: "invalid report category: " + string(r.Category)}
	}
	if r.RecipientEmailAddress == "" {
		return &IdentityError{Reason: "report has no recipient email address"}
	}
	if r.MessageURL == "" {
		return &SelectionError{Reason: "report has no message URL"}
	}
	return nil
}

// SubmissionResult describes a completed threat submission
type SubmissionResult struct {
	Report      *Report
	SubmittedAt time.Time
}

// CommandEvent is the host UI action that triggers a report. Options maps
// small integer indices to booleans; the host gives no enumeration-order
// guarantee, so category mapping walks the indices positionally.
type CommandEvent struct {
	Options map[int]bool
}

// CommandResult is the single completion signal sent back to the host.
// AllowEvent tells the host whether the original user action may proceed.
type CommandResult struct {
	AllowEvent bool
}

// CompletionFunc receives the command's completion signal. It is invoked
// exactly once per handled event.
type CompletionFunc func(CommandResult)
