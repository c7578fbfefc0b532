package common

import "time"

var StartTime = time.Now().Unix() // unit: second
var Version = "v0.1.0"            // this hard coding will be replaced automatically when building, no need to manually change
var SystemName = "CADVault"

// AuthCookieName is the cookie carrying the signed session token.
const AuthCookieName = "auth_token"

// TokenExpiryDuration is the fixed lifetime of a session token.
const TokenExpiryDuration = time.Hour

// All duration's unit is seconds
var (
	GlobalAPIRateLimitNum            = 60
	GlobalAPIRateLimitDuration int64 = 3 * 60

	UploadRateLimitNum            = 10
	UploadRateLimitDuration int64 = 60

	DownloadRateLimitNum            = 30
	DownloadRateLimitDuration int64 = 60

	CriticalRateLimitNum            = 10
	CriticalRateLimitDuration int64 = 60
)
