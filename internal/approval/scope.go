package approval

// Scopes tie a token to the class of action it unlocks.
const (
	ScopeEarlyCheckIn = "early_check_in"
	ScopeCheckout     = "checkout"
)
