package status

// ErrorCode is a numeric code to classify API errors in a stable way
type ErrorCode int

// Reserved ranges by domain:
//   0-999:     client/validation errors
//   1000-1999: upload/ingest internals
//   2000-2999: question generation internals
//   3000-3999: quiz room internals

const (
	BadRequestBase    ErrorCode = 0
	InternalErrorBase ErrorCode = 1000
	GenerateErrorBase ErrorCode = 2000
	RoomErrorBase     ErrorCode = 3000
)

// Client/validation errors start at 0
const (
	InvalidRequestBody ErrorCode = BadRequestBase + iota // 0
	MissingParams                                        // 1
	UnsupportedFormat                                    // 2
	NotFound                                             // 3
	WrongPassword                                        // 4
)

// Upload/ingest internal errors start at 1000
const (
	UploadInternal        ErrorCode = InternalErrorBase + iota // 1000
	IngestExtractFailed                                        // 1001
	IngestEmbeddingFailed                                      // 1002
)

// Generation internal errors start at 2000
const (
	GenerateInternal      ErrorCode = GenerateErrorBase + iota // 2000
	GenerateNoContent                                          // 2001
	GenerateExtraExhausted                                     // 2002
)

// Room internal errors start at 3000
const (
	RoomInternal ErrorCode = RoomErrorBase + iota // 3000
	RoomClosed                                    // 3001
)

const (
	ErrorCodeInternal ErrorCode = 9000
)

// CodedError represents an error with an associated ErrorCode
type CodedError interface {
	error
	ErrorCode() ErrorCode
}

type codedError struct {
	code ErrorCode
	err  error
}

func (e codedError) Error() string        { return e.err.Error() }
func (e codedError) Unwrap() error        { return e.err }
func (e codedError) ErrorCode() ErrorCode { return e.code }

// New creates a new CodedError with the given code and underlying error
func New(code ErrorCode, err error) error {
	if err == nil {
		return nil
	}
	return codedError{code: code, err: err}
}
