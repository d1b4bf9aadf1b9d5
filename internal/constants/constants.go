package constants

// Context and cookie keys shared between middleware and handlers.
const (
	ContextKeyUserID = "user_id"

	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)
