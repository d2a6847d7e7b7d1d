package bridge

import (
	"context"
	"encoding/json"
)

// Bridge is the musicbrain collaborator. Results are opaque JSON owned by
// the bridge; this layer never inspects them.
type Bridge interface {
	Generate(ctx context.Context, req GenerateRequest) (json.RawMessage, error)
	Interrogate(ctx context.Context, req InterrogateRequest) (json.RawMessage, error)
	GetEmotions(ctx context.Context) (json.RawMessage, error)
}

// EmotionCatalog serves the emotion taxonomy from a local source.
type EmotionCatalog interface {
	All(ctx context.Context) (json.RawMessage, error)
}
