package handlers

const (
	// Response envelope keys
	keyOK        = "ok"
	keyResult    = "result"
	keyError     = "error"
	keyRequestID = "request_id"

	maxCommandPayloadBytes = 8 << 20
)
