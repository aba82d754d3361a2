package services

// SendResult is the uniform outcome of an outbound message, whatever the
// provider. Network failures are folded into Sent=false rather than
// returned as errors, so callers always have one flag to inspect.
type SendResult struct {
	Sent   bool
	Detail string
}
