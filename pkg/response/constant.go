package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	// Error codes carried in Resp.ErrorCode. Domain errors use their own codes
	// through errors.HTTPError.
	CodeOK                 = 0
	CodeBadRequest         = 1
	CodeTooManyRequests    = 429
	CodeInternalError      = 500
	CodeServiceUnavailable = 503

	// DateTimeFormat is used for every timestamp in a response body.
	DateTimeFormat = "2006-01-02T15:04:05Z07:00"
)
