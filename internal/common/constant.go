package common

// AccessTokenHeaderName is the HTTP header that carries the raw access token.
// The value is the token itself, without a "Bearer " prefix.
const AccessTokenHeaderName = "Authorization"
