package model

// SubscriptionStatus is the billing state of an organisation's subscription.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionInactive SubscriptionStatus = "INACTIVE"
	SubscriptionPastDue  SubscriptionStatus = "PAST_DUE"
)

// Subscription is the optional billing subscription attached to an organisation.
type Subscription struct {
	ID     string             `json:"id"`
	Status SubscriptionStatus `json:"status"`
}

// InternalClaimEnterprise is the claim ID of the internally managed
// enterprise entitlement. Organisations holding it bypass all plan
// limits even when their subscription has lapsed.
const InternalClaimEnterprise = "enterprise"

// ClaimFlags are the feature switches carried by an organisation claim.
type ClaimFlags struct {
	UnlimitedDocuments  bool `json:"unlimitedDocuments"`
	AllowCustomBranding bool `json:"allowCustomBranding"`
}

// OrganisationClaim is an organisation's entitlement record determining
// plan tier and feature flags.
type OrganisationClaim struct {
	ID                string     `json:"id"`
	EnvelopeItemCount int        `json:"envelopeItemCount"`
	Flags             ClaimFlags `json:"flags"`
}

// Team is a workspace inside an organisation. URL is the unique slug
// the team is addressed by.
type Team struct {
	ID             int64  `json:"id"`
	OrganisationID string `json:"organisationId"`
	Name           string `json:"name"`
	URL            string `json:"url"`
}

// Organisation owns teams, members, envelopes and exactly one claim.
type Organisation struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ClaimID      string            `json:"claimId"`
	Claim        OrganisationClaim `json:"claim"`
	Subscription *Subscription     `json:"subscription,omitempty"`
}
