package service

import (
	"context"
	"database/sql"
	"errors"

	"nomia/internal/model"
	"nomia/internal/repository"
)

var (
	// ErrOrganisationNotFound means no organisation owns the team with
	// the user as a member, or the organisation has no claim.
	ErrOrganisationNotFound = errors.New("organisation not found")

	// ErrInvalidClaimData means the claim's envelope item count is
	// malformed. Data integrity problem, not a user error.
	ErrInvalidClaimData = errors.New("invalid organisation claim data")
)

// LimitsService computes a user's quota and remaining counts from their
// credit balance and the organisation's plan state.
type LimitsService interface {
	ComputeLimits(ctx context.Context, userID, teamID int64) (*model.QuotaResult, error)
}

type limitsService struct {
	orgs           repository.OrganisationRepository
	credits        CreditService
	billingEnabled bool
}

// NewLimitsService constructs a LimitsService. billingEnabled mirrors
// the global billing enforcement flag; when false, self-hosted plan
// limits apply regardless of subscription state.
func NewLimitsService(orgs repository.OrganisationRepository, credits CreditService, billingEnabled bool) LimitsService {
	return &limitsService{orgs: orgs, credits: credits, billingEnabled: billingEnabled}
}

// ComputeLimits applies a strict precedence of override rules, first
// match wins:
//
//  1. documents quota/remaining always come from the credit ledger
//  2. billing disabled        -> self-hosted limits
//  3. enterprise claim        -> paid limits (bypasses expiry)
//  4. INACTIVE subscription   -> inactive limits
//  5. unlimitedDocuments flag -> paid limits
//  6. otherwise free limits minus the org's direct-link template count
//
// maximumEnvelopeItemCount passes through from the claim in every branch.
func (s *limitsService) ComputeLimits(ctx context.Context, userID, teamID int64) (*model.QuotaResult, error) {
	org, err := s.orgs.FindByTeamAndUser(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrganisationNotFound
		}
		return nil, err
	}

	if org.Claim.EnvelopeItemCount < 0 {
		return nil, ErrInvalidClaimData
	}

	userCredits, err := s.credits.Credits(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Documents always track the credit balance, irrespective of plan.
	result := &model.QuotaResult{
		Quota: model.Limits{
			Documents:       userCredits,
			Recipients:      FreePlanLimits.Recipients,
			DirectTemplates: FreePlanLimits.DirectTemplates,
		},
		Remaining: model.Limits{
			Documents:       max(userCredits, 0),
			Recipients:      FreePlanLimits.Recipients,
			DirectTemplates: FreePlanLimits.DirectTemplates,
		},
		MaximumEnvelopeItemCount: org.Claim.EnvelopeItemCount,
	}

	if !s.billingEnabled {
		applyPlan(result, SelfHostedPlanLimits)
		return result, nil
	}

	// Enterprise bypasses all remaining checks, even an expired plan.
	if org.ClaimID == model.InternalClaimEnterprise {
		applyPlan(result, PaidPlanLimits)
		return result, nil
	}

	if org.Subscription != nil && org.Subscription.Status == model.SubscriptionInactive {
		applyPlan(result, InactivePlanLimits)
		return result, nil
	}

	if org.Claim.Flags.UnlimitedDocuments {
		applyPlan(result, PaidPlanLimits)
		return result, nil
	}

	// Standard free/paid path: direct templates are still counted the
	// old way, against the free plan cap.
	directTemplates, err := s.orgs.CountDirectTemplates(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	result.Remaining.DirectTemplates = max(result.Remaining.DirectTemplates-directTemplates, 0)

	return result, nil
}

// applyPlan overrides the non-document axes from the given plan. The
// document axes stay bound to the credit ledger.
func applyPlan(r *model.QuotaResult, plan model.Limits) {
	r.Quota.Recipients = plan.Recipients
	r.Quota.DirectTemplates = plan.DirectTemplates
	r.Remaining.Recipients = plan.Recipients
	r.Remaining.DirectTemplates = plan.DirectTemplates
}
