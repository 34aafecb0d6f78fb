package schema

// Slot names, also used as Issue.Type.
const (
	SlotBody    = "body"
	SlotParams  = "params"
	SlotQuery   = "query"
	SlotHeaders = "headers"
)

// Result descriptions.
const (
	DescSuccess        = "success"
	DescInvalidRequest = "invalid_request"
	DescUnknownError   = "unknown_error"
)

// Schema holds the optional definitions for each request slot.
type Schema struct {
	Body    *Definition
	Params  *Definition
	Query   *Definition
	Headers *Definition
}

// Input is the request data checked against a Schema.
type Input struct {
	Body    any
	Params  map[string]string
	Query   map[string]any
	Headers map[string]string
}

// Issue is a single violation.
type Issue struct {
	Type    string `json:"type"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result is the outcome of a validation.
type Result struct {
	Failed bool
	Desc   string
	Errors []Issue
}

func success() Result {
	return Result{Desc: DescSuccess}
}

func unknown(err any) Result {
	return Result{
		Failed: true,
		Desc:   DescUnknownError,
		Errors: []Issue{{Type: DescUnknownError, Message: messageOf(err)}},
	}
}
