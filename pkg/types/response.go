package types

// Envelope is the uniform response wrapper shared with the platform API, so
// the web client sees one contract end to end.
type Envelope struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data,omitempty"`
}
