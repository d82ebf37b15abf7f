package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ReportScopes are the delegated Graph permissions a report submission needs
var ReportScopes = []string{
	"https://graph.microsoft.com/ThreatSubmission.ReadWrite",
	"https://graph.microsoft.com/Mail.Read",
}

const threatSubmissionPath = "/security/threatSubmission/emailThreats"

// emailURLThreatSubmission is the Graph threat-submission payload
type emailURLThreatSubmission struct {
	ODataType             string `json:"@odata.type"`
	Category              string `json:"category"`
	RecipientEmailAddress string `json:"recipientEmailAddress"`
	MessageURL            string `json:"messageUrl"`
}

// ThreatReportService is the core service for submitting email threat reports
type ThreatReportService struct {
	graph     GraphAPI
	logger    *zap.Logger
	graphBase string
}

// NewThreatReportService creates a new threat report service
func NewThreatReportService(graph GraphAPI, logger *zap.Logger, graphBase string) *ThreatReportService {
	return &ThreatReportService{
		graph:     graph,
		logger:    logger,
		graphBase: strings.TrimRight(graphBase, "/"),
	}
}

// CurrentUserID resolves the acting user's unique identifier from their
// Graph profile, requesting only the id field.
func (s *ThreatReportService) CurrentUserID(ctx context.Context, token string) (string, error) {
	raw, err := s.graph.Get(ctx, token, "/me", "?$select=id")
	if err != nil {
		return "", err
	}

	var profile struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &profile); err != nil {
		return "", &IdentityError{Reason: "malformed profile response: " + err.Error()}
	}
	if profile.ID == "" {
		return "", &IdentityError{Reason: "user profile has no id field"}
	}

	return profile.ID, nil
}

// RecipientEmailAddress reads the mailbox address from the host session
func (s *ThreatReportService) RecipientEmailAddress(session MailboxSession) (string, error) {
	email := session.UserEmailAddress()
	if email == "" {
		return "", &IdentityError{Reason: "session has no mailbox address"}
	}
	return email, nil
}

// CurrentMessageURL builds the REST-addressable resource URL of the
// currently selected message.
func (s *ThreatReportService) CurrentMessageURL(ctx context.Context, token string, session MailboxSession) (string, error) {
	itemID := session.ItemID()
	if itemID == "" {
		return "", &SelectionError{Reason: "no message is selected"}
	}

	restID := session.ConvertToRestID(itemID)
	if restID == "" {
		return "", &SelectionError{Reason: "selected message id could not be converted"}
	}

	userID, err := s.CurrentUserID(ctx, token)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/users/%s/messages/%s", s.graphBase, userID, restID), nil
}

// SubmitEmailThreat reports the currently selected message under the given
// category. The first failing sub-step's error propagates unchanged; the
// report is validated before any POST is attempted.
func (s *ThreatReportService) SubmitEmailThreat(
	ctx context.Context,
	tokens TokenProvider,
	session MailboxSession,
	category Category,
) (*SubmissionResult, error) {
	token, err := tokens.Acquire(ctx, ReportScopes)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire report token: %w", err)
	}

	// Recipient and message URL have no ordering dependency between them
	recipient, err := s.RecipientEmailAddress(session)
	if err != nil {
		return nil, err
	}
	messageURL, err := s.CurrentMessageURL(ctx, token, session)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Category:              category,
		RecipientEmailAddress: recipient,
		MessageURL:            messageURL,
	}
	if err := report.Validate(); err != nil {
		return nil, err
	}

	body := emailURLThreatSubmission{
		ODataType:             "#microsoft.graph.security.emailUrlThreatSubmission",
		Category:              string(report.Category),
		RecipientEmailAddress: report.RecipientEmailAddress,
		MessageURL:            report.MessageURL,
	}
	if _, err := s.graph.Post(ctx, token, threatSubmissionPath, body); err != nil {
		return nil, err
	}

	s.logger.Info("Threat report submitted",
		zap.String("category", string(report.Category)),
		zap.String("message_url", report.MessageURL))

	return &SubmissionResult{
		Report:      report,
		SubmittedAt: time.Now(),
	}, nil
}
