package domain

import "encoding/json"

// Result is the tagged outcome every AI-facing call communicates through.
// It is either Ok (carrying data) or Fail (carrying a human-readable error
// message plus the underlying cause for adapters to map).
// The workflow layer only ever observes this shape, never a raised fault.
type Result[T any] struct {
	ok      bool
	data    T
	message string
	cause   error
}

// Ok creates a successful result carrying data.
func Ok[T any](data T) Result[T] {
	return Result[T]{ok: true, data: data}
}

// Fail creates a failed result with a human-readable message and its cause.
func Fail[T any](message string, cause error) Result[T] {
	return Result[T]{message: message, cause: cause}
}

// Success reports whether the result carries data.
func (r Result[T]) Success() bool {
	return r.ok
}

// Data returns the carried data. Only meaningful when Success is true.
func (r Result[T]) Data() T {
	return r.data
}

// ErrorMessage returns the human-readable failure message.
// Empty when the result is successful.
func (r Result[T]) ErrorMessage() string {
	return r.message
}

// Cause returns the underlying error for adapter-level mapping.
// Nil when the result is successful.
func (r Result[T]) Cause() error {
	return r.cause
}

// resultJSON is the wire shape: {success:true,data} | {success:false,error}.
type resultJSON[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := resultJSON[T]{Success: r.ok}
	if r.ok {
		data := r.data
		out.Data = &data
	} else {
		out.Error = r.message
	}

	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result[T]) UnmarshalJSON(b []byte) error {
	var in resultJSON[T]
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	r.ok = in.Success
	r.message = in.Error
	if in.Data != nil {
		r.data = *in.Data
	}

	return nil
}
