package domain

type ctxKey string

const (
	// RequesterIdCtxKey carries the authenticated actor id through the
	// request context. Absent or empty means anonymous.
	RequesterIdCtxKey ctxKey = "db-requesterId"
)

const (
	RequesterIdHeader = "db-requester-id"
)
