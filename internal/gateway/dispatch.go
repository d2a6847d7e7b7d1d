package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/Conceptual-Machines/musicbrain-api/internal/bridge"
)

// Commands lists the command names Dispatch accepts.
func Commands() []string {
	return []string{OpGenerateMusic, OpInterrogate, OpGetEmotions}
}

// Dispatch runs a command by name with its JSON payload, the way the host
// application invokes commands. get_emotions ignores its payload.
func (g *Gateway) Dispatch(ctx context.Context, command string, payload json.RawMessage) (json.RawMessage, error) {
	switch command {
	case OpGenerateMusic:
		var req bridge.GenerateRequest
		if err := decodePayload(payload, &req, "intent"); err != nil {
			return nil, &DispatchError{Command: command, Err: err}
		}
		return g.GenerateMusic(ctx, req)

	case OpInterrogate:
		var req bridge.InterrogateRequest
		if err := decodePayload(payload, &req, "message"); err != nil {
			return nil, &DispatchError{Command: command, Err: err}
		}
		return g.Interrogate(ctx, req)

	case OpGetEmotions:
		return g.GetEmotions(ctx)

	default:
		return nil, &DispatchError{Command: command, Unknown: true}
	}
}

// decodePayload decodes an object payload and checks that the required key
// is present. The key's value is not validated.
func decodePayload(payload json.RawMessage, v any, required string) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		return errors.New("payload is empty")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return err
	}
	if _, ok := fields[required]; !ok {
		return errors.New("missing field " + required)
	}
	return json.Unmarshal(payload, v)
}
