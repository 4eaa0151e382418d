package service

import "nomia/internal/model"

// Unlimited marks a plan axis without a cap.
const Unlimited = -1

// Plan limit constants per entitlement tier. The Documents axis is
// legacy: document quota is always computed from the user's credit
// balance, which supersedes these values. Recipients and DirectTemplates
// are still sourced from here.
var (
	FreePlanLimits = model.Limits{
		Documents:       5,
		Recipients:      10,
		DirectTemplates: 3,
	}

	PaidPlanLimits = model.Limits{
		Documents:       Unlimited,
		Recipients:      Unlimited,
		DirectTemplates: Unlimited,
	}

	SelfHostedPlanLimits = model.Limits{
		Documents:       Unlimited,
		Recipients:      Unlimited,
		DirectTemplates: Unlimited,
	}

	InactivePlanLimits = model.Limits{
		Documents:       0,
		Recipients:      0,
		DirectTemplates: 0,
	}
)
