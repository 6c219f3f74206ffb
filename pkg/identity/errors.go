package identity

import "errors"

var (
	// Provider outcomes, matched by *Error through errors.Is.
	ErrNotAuthorized    = errors.New("not authorized")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrUserNotConfirmed = errors.New("user is not confirmed")
	ErrCodeMismatch     = errors.New("verification code mismatch")
	ErrCodeExpired      = errors.New("verification code expired")
	ErrInvalidPassword  = errors.New("password does not conform to policy")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrLimitExceeded    = errors.New("request limit exceeded")

	// ErrChallengeRequired is returned by SignIn when the pool answers with an
	// auth challenge instead of tokens.
	ErrChallengeRequired = errors.New("authentication challenge required")

	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")

	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)

// codeErrors maps provider exception codes to package sentinels.
var codeErrors = map[string]error{
	"NotAuthorizedException":                ErrNotAuthorized,
	"UserNotFoundException":                 ErrUserNotFound,
	"UsernameExistsException":               ErrUserExists,
	"AliasExistsException":                  ErrUserExists,
	"UserNotConfirmedException":             ErrUserNotConfirmed,
	"CodeMismatchException":                 ErrCodeMismatch,
	"ExpiredCodeException":                  ErrCodeExpired,
	"InvalidPasswordException":              ErrInvalidPassword,
	"InvalidParameterException":             ErrInvalidParameter,
	"LimitExceededException":                ErrLimitExceeded,
	"TooManyRequestsException":              ErrLimitExceeded,
	"TooManyFailedAttemptsException":        ErrLimitExceeded,
	"PasswordResetRequiredException":        ErrNotAuthorized,
	"InvalidUserPoolConfigurationException": ErrInvalidConfig,
}

// Error is a failed provider call. Message is the provider's own message and
// is what Error returns, so it can be shown to the caller unchanged.
type Error struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Op + " failed"
}

// ErrorCode returns the provider exception code, if any.
func (e *Error) ErrorCode() string {
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel registered for e.Code.
func (e *Error) Is(target error) bool {
	sentinel, ok := codeErrors[e.Code]
	return ok && sentinel == target
}
