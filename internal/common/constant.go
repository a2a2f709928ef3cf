package common

// Durable storage keys owned by the session store. KeyLegacyUserID is the
// bare user-id string older installs wrote; it is kept readable for them and
// rewritten on every login so both generations of the app agree.
const (
	KeyToken        = "session.token"
	KeyUser         = "session.user"
	KeyLegacyUserID = "userId"
)

// AuthHeaderName carries the bearer token on outbound requests.
const AuthHeaderName = "Authorization"
