package globals

type contextKey string

const (
	UserIDKey  contextKey = "userId"
	TokenIDKey contextKey = "tokenId"
	ParamIDKey contextKey = "params"
)
