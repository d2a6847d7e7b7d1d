package bridge

import "encoding/json"

// EmotionalIntent describes the emotional content requested for a generation.
// Every field is optional. Absent fields marshal as null so the bridge sees the
// same shape regardless of which fields the caller filled in.
type EmotionalIntent struct {
	CoreWound  *string `json:"core_wound"`
	CoreDesire *string `json:"core_desire"`

	// Deprecated: use BaseEmotion, Intensity and SpecificEmotion.
	EmotionalIntent *string `json:"emotional_intent"`

	// Technical generation parameters, schema owned by the bridge
	Technical json.RawMessage `json:"technical"`

	BaseEmotion     *string `json:"base_emotion"`
	Intensity       *string `json:"intensity"`
	SpecificEmotion *string `json:"specific_emotion"`
}

// GenerateRequest is forwarded to the bridge's generate operation.
// A nil OutputFormat means the bridge default.
type GenerateRequest struct {
	Intent       EmotionalIntent `json:"intent"`
	OutputFormat *string         `json:"output_format"`
}

// InterrogateRequest is forwarded to the bridge's interrogate operation.
// A nil SessionID starts a new session on the bridge side.
type InterrogateRequest struct {
	Message   string          `json:"message"`
	SessionID *string         `json:"session_id"`
	Context   json.RawMessage `json:"context"`
}
