package result

// Code is the reason code of an asynchronous failure.
type Code uint8

const (
	// CodeOK indicates success.
	CodeOK Code = 0

	// CodeError is an unspecified failure.
	CodeError Code = 1

	// CodeBadRequest indicates the device rejected the request payload.
	CodeBadRequest Code = 2

	// CodeUnauthorized indicates the tool could not authenticate.
	CodeUnauthorized Code = 3

	// CodeForbidden indicates the device's ACL denied the request.
	CodeForbidden Code = 4

	// CodeNotFound indicates the target resource or entry does not exist.
	CodeNotFound Code = 5

	// CodeTimeout indicates the device did not answer.
	CodeTimeout Code = 6

	// CodeUnreachable indicates no endpoint of the device could be reached.
	CodeUnreachable Code = 7

	// CodeVerifyFailed indicates a certificate or PIN check failed.
	CodeVerifyFailed Code = 8

	// CodeInternal indicates an error inside the SDK.
	CodeInternal Code = 9
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "OK"
	case CodeError:
		return "ERROR"
	case CodeBadRequest:
		return "BAD_REQUEST"
	case CodeUnauthorized:
		return "UNAUTHORIZED"
	case CodeForbidden:
		return "FORBIDDEN"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeTimeout:
		return "TIMEOUT"
	case CodeUnreachable:
		return "UNREACHABLE"
	case CodeVerifyFailed:
		return "VERIFY_FAILED"
	case CodeInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the code indicates success.
func (c Code) IsSuccess() bool {
	return c == CodeOK
}
