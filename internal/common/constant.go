package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// operator access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// RequestIDHeaderName is the gRPC metadata key a caller may use to supply
// its own request id. The server generates one when it is absent.
const RequestIDHeaderName = "x-request-id"
