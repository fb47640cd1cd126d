package models

// Error types returned by services. helper.HTTPHelper maps each of them to an
// HTTP status code.

type ErrorBadRequest struct {
	Message string
}

func (e ErrorBadRequest) Error() string { return e.Message }

type AuthFailure string

const (
	NoToken      AuthFailure = "no_token"
	TokenInvalid AuthFailure = "token_invalid"
	TokenRevoked AuthFailure = "token_revoked"
	BadLogin     AuthFailure = "bad_credentials"
)

type ErrorUnauthorized struct {
	Reason  AuthFailure
	Message string
}

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorForbidden struct {
	Message string
}

func (e ErrorForbidden) Error() string { return e.Message }

type ErrorNotFound struct {
	Message string
}

func (e ErrorNotFound) Error() string { return e.Message }

type ErrorConflict struct {
	Message string
}

func (e ErrorConflict) Error() string { return e.Message }

type ErrorInternalServer struct {
	Message string
}

func (e ErrorInternalServer) Error() string { return e.Message }

var (
	ErrNoToken      = ErrorUnauthorized{Reason: NoToken, Message: "you are not logged in"}
	ErrTokenRevoked = ErrorUnauthorized{Reason: TokenRevoked, Message: "this session is already terminated"}
	ErrUnauthorized = ErrorForbidden{Message: "unauthorized access"}
	ErrBadPageQuery = ErrorBadRequest{Message: "page, limit and offset must be positive integers"}
)

func TokenInvalidError(msg string) ErrorUnauthorized {
	if msg == "" {
		msg = "problem with access token"
	}
	return ErrorUnauthorized{Reason: TokenInvalid, Message: msg}
}
