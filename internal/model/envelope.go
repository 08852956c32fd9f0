package model

// Envelope is the uniform HTTP response body. Callers must treat anything
// without Success=true as failure regardless of the transport status code.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Fail(msg string) Envelope {
	return Envelope{Success: false, Message: msg}
}
