package observability

import (
	"context"
	"encoding/json"

	"github.com/Conceptual-Machines/musicbrain-api/internal/bridge"
)

// tracedBridge records every bridge call as a Langfuse trace
type tracedBridge struct {
	next   bridge.Bridge
	client *LangfuseClient
}

// TraceBridge wraps b so its calls are traced. When Langfuse is disabled b is
// returned as is.
func TraceBridge(b bridge.Bridge, client *LangfuseClient) bridge.Bridge {
	if !client.IsEnabled() {
		return b
	}
	return &tracedBridge{next: b, client: client}
}

func (t *tracedBridge) Generate(ctx context.Context, req bridge.GenerateRequest) (json.RawMessage, error) {
	metadata := map[string]interface{}{
		"intent_forms": req.Intent.Forms(),
	}
	if req.OutputFormat != nil {
		metadata["output_format"] = *req.OutputFormat
	}
	return t.traced(ctx, "generate", req, metadata, func(ctx context.Context) (json.RawMessage, error) {
		return t.next.Generate(ctx, req)
	})
}

func (t *tracedBridge) Interrogate(ctx context.Context, req bridge.InterrogateRequest) (json.RawMessage, error) {
	metadata := map[string]interface{}{
		"new_session": req.SessionID == nil,
	}
	if req.SessionID != nil {
		metadata["session_id"] = *req.SessionID
	}
	return t.traced(ctx, "interrogate", req, metadata, func(ctx context.Context) (json.RawMessage, error) {
		return t.next.Interrogate(ctx, req)
	})
}

func (t *tracedBridge) GetEmotions(ctx context.Context) (json.RawMessage, error) {
	return t.traced(ctx, "get_emotions", nil, nil, t.next.GetEmotions)
}

func (t *tracedBridge) traced(
	ctx context.Context,
	name string,
	input interface{},
	metadata map[string]interface{},
	fn func(context.Context) (json.RawMessage, error),
) (json.RawMessage, error) {
	trace := t.client.StartTrace(ctx, "musicbrain."+name, metadata)
	defer trace.Finish()

	obs := trace.Observation(name, metadata)
	obs.Input(input)

	result, err := fn(ctx)
	if err != nil {
		obs.Fail(err.Error())
	} else {
		obs.Output(rawValue(result))
	}
	obs.Finish()

	return result, err
}
