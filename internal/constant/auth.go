package constant

const (
	// TarnishedIDAuthMaxCookieAgeSec in seconds
	TarnishedIDAuthMaxCookieAgeSec = 313560000

	TarnishedIDCookieKey = "tarnishedID"

	// TarnishedIDSetHeader carries a newly assigned user id back to clients
	// that cannot keep cookies.
	TarnishedIDSetHeader = "X-Tarnished-Set-ID"

	// TarnishedIDAuthorizationRealm is the authorization realm (prefix of value
	// in the `Authorization` header)
	TarnishedIDAuthorizationRealm = "Tarnished"

	// AdminKeyHeader carries the key guarding the admin API.
	AdminKeyHeader = "X-Admin-Key"
)
