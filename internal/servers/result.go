package servers

// Result is the flattened outcome of a mutating operation, as reported at the command-dispatch boundary.
type Result struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`
}

// NewResult flattens err into a Result, using message when the operation succeeded.
func NewResult(err error, message string) Result {
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	return Result{Success: true, Message: message}
}
