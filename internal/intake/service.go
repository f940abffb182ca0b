// Package intake sequences an inbound claim description through policy
// lookup, eligibility evaluation, duplicate matching and claim submission.
package intake

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/psellars/fnolgate/internal/convstore"
	"github.com/psellars/fnolgate/internal/duplicate"
	"github.com/psellars/fnolgate/internal/eligibility"
	"github.com/psellars/fnolgate/internal/extract"
	"github.com/psellars/fnolgate/internal/guidewire"
	"github.com/psellars/fnolgate/internal/mailtext"
	"github.com/psellars/fnolgate/internal/model"
	"github.com/psellars/fnolgate/internal/policy"
)

// PolicyFetcher retrieves the latest policy document for a policy number.
type PolicyFetcher interface {
	LatestDetails(ctx context.Context, policyNumber string) (string, error)
}

// ClaimHistory retrieves prior claims for a policy number.
type ClaimHistory interface {
	History(ctx context.Context, policyNumber string) ([]model.ClaimRecord, error)
}

// ClaimSubmitter posts a synthesized claim payload to the claim system.
type ClaimSubmitter interface {
	Submit(ctx context.Context, payload map[string]any) (*guidewire.SubmitResult, error)
}

// FieldExtractor pulls structured fields and intent from free text.
type FieldExtractor interface {
	PolicyDetails(ctx context.Context, text string) (*extract.Extraction, error)
	ClassifyIntent(ctx context.Context, body string) extract.Intent
}

// PayloadSynthesizer builds a claim-creation payload from the claim text
// and the policy document.
type PayloadSynthesizer interface {
	Synthesize(ctx context.Context, claimText, policyDetails string) (map[string]any, error)
}

// ConversationStore tracks pending conversations for the follow-up flow.
type ConversationStore interface {
	Save(conversationID, body string) error
	Exists(conversationID string) bool
	Fetch(conversationID string) (*convstore.Record, bool)
	Forget(conversationID string) error
}

// Response messages returned to the mail gateway.
const (
	msgInvalidPolicy = "Policy Number is Invalid or Policy Does Not Exist"
	msgPolicyExpired = "Policy is Expired or Invalid"
	msgNotEligible   = "Policy is Not Eligible for Claim"
	msgDuplicate     = "Duplicate Claim Found"
	msgClaimCreated  = "Claim Created Successfully"
	msgNotRequired   = "No claim action required for this email"
	msgFailed        = "Failed"
)

// Service runs the decision sequence. All collaborators are injected; the
// sequence itself performs no I/O beyond them.
type Service struct {
	policies       PolicyFetcher
	claims         ClaimHistory
	submitter      ClaimSubmitter
	extractor      FieldExtractor
	synthesizer    PayloadSynthesizer
	conversations  ConversationStore
	toleranceHours float64
	submitAttempts int
	log            *slog.Logger
	now            func() time.Time
}

// Deps bundles the collaborators of a Service.
type Deps struct {
	Policies      PolicyFetcher
	Claims        ClaimHistory
	Submitter     ClaimSubmitter
	Extractor     FieldExtractor
	Synthesizer   PayloadSynthesizer
	Conversations ConversationStore
	Logger        *slog.Logger
}

// NewService creates a Service from its collaborators and tuning config.
func NewService(deps Deps, cfg model.IntakeConfig) *Service {
	if cfg.ToleranceHours <= 0 {
		cfg.ToleranceHours = duplicate.DefaultToleranceHours
	}
	if cfg.SubmitAttempts <= 0 {
		cfg.SubmitAttempts = 3
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		policies:       deps.Policies,
		claims:         deps.Claims,
		submitter:      deps.Submitter,
		extractor:      deps.Extractor,
		synthesizer:    deps.Synthesizer,
		conversations:  deps.Conversations,
		toleranceHours: cfg.ToleranceHours,
		submitAttempts: cfg.SubmitAttempts,
		log:            log,
		now:            time.Now,
	}
}

// HandleInbound processes one inbound email payload. A conversation ID that
// is already pending routes to the follow-up flow; everything else starts a
// fresh decision sequence.
func (s *Service) HandleInbound(ctx context.Context, conversationID, rawBody string) *model.IntakeResponse {
	text := mailtext.Clean(rawBody)

	if conversationID != "" && s.conversations != nil && s.conversations.Exists(conversationID) {
		return s.handleFollowUp(ctx, conversationID, text)
	}

	d := s.decide(ctx, text)
	switch d.Action {
	case model.ActionProceed:
		return s.attemptClaimCreation(ctx, text, d.doc, d.PolicyNumber)
	case model.ActionDuplicate:
		// Remember the conversation so an explicit "proceed" reply can
		// override the duplicate.
		if conversationID != "" && s.conversations != nil {
			if err := s.conversations.Save(conversationID, text); err != nil {
				s.log.Warn("failed to save conversation", "conversation_id", conversationID, "error", err)
			}
		}
		return duplicateResponse(d.Duplicate)
	default:
		return rejectionResponse(d.Action, d.PolicyNumber)
	}
}

// handleFollowUp runs the stored body through the sequence again when the
// sender confirms they want to proceed despite the earlier duplicate.
func (s *Service) handleFollowUp(ctx context.Context, conversationID, text string) *model.IntakeResponse {
	intent := s.extractor.ClassifyIntent(ctx, text)
	if intent != extract.IntentProceed {
		return &model.IntakeResponse{
			Message: msgNotRequired,
			Action:  model.ActionNotRequired,
		}
	}

	rec, found := s.conversations.Fetch(conversationID)
	if !found {
		return &model.IntakeResponse{
			Message: msgNotRequired,
			Action:  model.ActionNotRequired,
		}
	}

	d := s.decide(ctx, rec.Body)
	switch d.Action {
	case model.ActionProceed, model.ActionDuplicate:
		// The sender has already seen the duplicate and asked to proceed.
		resp := s.attemptClaimCreation(ctx, rec.Body, d.doc, d.PolicyNumber)
		if resp.Action == model.ActionClaimCreated {
			if err := s.conversations.Forget(conversationID); err != nil {
				s.log.Warn("failed to forget conversation", "conversation_id", conversationID, "error", err)
			}
		}
		return resp
	default:
		return rejectionResponse(d.Action, d.PolicyNumber)
	}
}

// decision carries the outcome plus the fetched policy document so a
// proceed outcome can synthesize without refetching.
type decision struct {
	model.Decision
	doc  string
	loss string
}

// Decide runs extraction, policy lookup, eligibility and duplicate matching
// over cleaned text without submitting anything.
func (s *Service) Decide(ctx context.Context, text string) *model.Decision {
	d := s.decide(ctx, text)
	return &d.Decision
}

func (s *Service) decide(ctx context.Context, text string) *decision {
	ext, err := s.extractor.PolicyDetails(ctx, text)
	if err != nil {
		s.log.Info("extraction failed", "error", err)
		return &decision{Decision: model.Decision{Action: model.ActionInvalidPolicy}}
	}

	doc, err := s.policies.LatestDetails(ctx, ext.PolicyNumber)
	if err != nil {
		s.log.Info("policy lookup failed", "policy_number", ext.PolicyNumber, "error", err)
		return &decision{Decision: model.Decision{
			Action:       model.ActionInvalidPolicy,
			PolicyNumber: ext.PolicyNumber,
		}}
	}

	window, err := policy.Parse(doc)
	if err != nil {
		s.log.Info("malformed policy document", "policy_number", ext.PolicyNumber, "error", err)
		return &decision{Decision: model.Decision{
			Action:       model.ActionInvalidPolicy,
			PolicyNumber: ext.PolicyNumber,
		}}
	}

	base := decision{
		Decision: model.Decision{
			PolicyNumber: ext.PolicyNumber,
			Policy:       window,
		},
		doc:  doc,
		loss: ext.LossDate,
	}

	loss, err := model.ParseTimestamp(ext.LossDate)
	if err != nil {
		// Unparsable loss date is an invalid-window outcome, not a crash.
		s.log.Info("unparsable loss date", "loss_date", ext.LossDate)
		base.Action = model.ActionPolicyExpired
		return &base
	}

	outcome := eligibility.Evaluate(window.EffectiveDate, window.ExpirationDate, loss, s.now().UTC())
	switch outcome {
	case eligibility.OutcomeInvalid:
		base.Action = model.ActionPolicyExpired
		return &base
	case eligibility.OutcomeNotEligible:
		base.Action = model.ActionNotEligible
		return &base
	}

	history, err := s.claims.History(ctx, ext.PolicyNumber)
	if err != nil {
		// No history available means no duplicates found.
		s.log.Warn("claim history unavailable", "policy_number", ext.PolicyNumber, "error", err)
		base.Action = model.ActionProceed
		return &base
	}

	if match := duplicate.Find(history, loss, s.toleranceHours); match != nil {
		base.Action = model.ActionDuplicate
		base.Duplicate = match
		return &base
	}

	base.Action = model.ActionProceed
	return &base
}

// attemptClaimCreation synthesizes and submits the claim, retrying the
// whole synthesize-and-submit cycle up to the configured attempt count.
func (s *Service) attemptClaimCreation(ctx context.Context, text, policyDoc, policyNumber string) *model.IntakeResponse {
	var lastStatus int

	for attempt := 1; attempt <= s.submitAttempts; attempt++ {
		payload, err := s.synthesizer.Synthesize(ctx, text, policyDoc)
		if err != nil {
			s.log.Warn("claim synthesis failed", "policy_number", policyNumber, "attempt", attempt, "error", err)
			continue
		}

		result, err := s.submitter.Submit(ctx, payload)
		if err == nil {
			s.log.Info("claim created", "policy_number", policyNumber, "claim_number", result.ClaimNumber)
			return &model.IntakeResponse{
				ClaimNumber:  result.ClaimNumber,
				PolicyNumber: policyNumber,
				Message:      msgClaimCreated,
				Action:       model.ActionClaimCreated,
			}
		}

		if result != nil {
			lastStatus = result.StatusCode
		}
		s.log.Warn("claim submission failed", "policy_number", policyNumber, "attempt", attempt, "status", lastStatus, "error", err)
	}

	if lastStatus == 0 {
		lastStatus = http.StatusInternalServerError
	}
	return &model.IntakeResponse{
		PolicyNumber: policyNumber,
		Message:      msgFailed,
		Action:       model.ActionFailed,
		HTTPStatus:   lastStatus,
	}
}

func duplicateResponse(match *model.DuplicateMatch) *model.IntakeResponse {
	return &model.IntakeResponse{
		ClaimNumber:  match.ClaimNumber,
		PolicyNumber: match.PolicyNumber,
		LossDate:     match.LossDate,
		ClaimStatus:  match.ClaimStatus,
		Message:      msgDuplicate,
		Action:       model.ActionDuplicate,
		Duplicate:    match,
	}
}

func rejectionResponse(action model.Action, policyNumber string) *model.IntakeResponse {
	msg := msgInvalidPolicy
	switch action {
	case model.ActionPolicyExpired:
		msg = msgPolicyExpired
	case model.ActionNotEligible:
		msg = msgNotEligible
	}
	return &model.IntakeResponse{
		PolicyNumber: policyNumber,
		Message:      msg,
		Action:       action,
	}
}
