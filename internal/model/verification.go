package model

// EntityKind classifies the entity an employment verification matched.
type EntityKind string

// Entity kind constants.
const (
	EntityCorporate   EntityKind = "corporate"
	EntityInstitution EntityKind = "institution"
	EntityPlatform    EntityKind = "freelance-platform"
	EntityNone        EntityKind = "none"
)

// VerificationOutcome is the result of evaluating an email address or
// professional profile link against the verification rule tables.
type VerificationOutcome struct {
	MatchedEntity string // Organization, platform, or institution name; empty when invalid
	Kind          EntityKind
	IsValid       bool
	// IsPreVerified is true when the matched entity came from a trusted
	// allow-list rather than a shape heuristic.
	IsPreVerified bool
	// UserConfirmed records the explicit confirmation step for detected but
	// unverified institutions. It is never set by automatic matching.
	UserConfirmed bool
}

// Institution describes an email domain detected as an academic or
// organizational namespace, independent of allow-list membership.
type Institution struct {
	Name        string
	DisplayName string
	Kind        EntityKind
	IsVerified  bool
}
