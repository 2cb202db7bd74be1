package consts

const (
	// DETAIL is the locals key carrying the response payload for the
	// unified response middleware.
	DETAIL = "detail"

	// OPERATION is the locals key marking a payload-less success.
	OPERATION = "operation"

	// Claims is the locals key carrying the parsed auth claims.
	Claims = "claims"
)

const (
	// UserTokenKey prefixes the redis key holding a user's session token.
	UserTokenKey = "stride:user:token:"
)

// Collection names in the document store.
const (
	CollectionUser    = "user"
	CollectionProject = "project"
	CollectionTeam    = "team"
	CollectionTask    = "task"
)
