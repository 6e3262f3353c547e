package common

// AuthTokenHeaderName is the HTTP header carrying the signed access token
// on authenticated requests.
const AuthTokenHeaderName = "x-auth-token"

// RoleAdmin is the only role allowed to mutate content and media.
const RoleAdmin = "admin"
