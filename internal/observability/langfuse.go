package observability

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Conceptual-Machines/musicbrain-api/internal/config"
	langfuse "github.com/henomis/langfuse-go"
	"github.com/henomis/langfuse-go/model"
)

const levelError = "ERROR"

// LangfuseClient wraps the Langfuse client with our configuration
type LangfuseClient struct {
	client  *langfuse.Langfuse
	enabled bool
	ctx     context.Context
}

// InitializeLangfuse creates the Langfuse client. The SDK reads its keys and
// host from the LANGFUSE_* environment variables.
func InitializeLangfuse(ctx context.Context, cfg *config.Config) *LangfuseClient {
	if !cfg.LangfuseEnabled || cfg.LangfuseSecretKey == "" {
		log.Println("⚠️  Langfuse not configured (LANGFUSE_ENABLED=false or LANGFUSE_SECRET_KEY not set)")
		return &LangfuseClient{enabled: false, ctx: ctx}
	}

	lf := langfuse.New(ctx)
	log.Printf("✅ Langfuse initialized (host: %s)", cfg.LangfuseHost)
	return &LangfuseClient{
		client:  lf,
		enabled: true,
		ctx:     ctx,
	}
}

// IsEnabled returns whether Langfuse is enabled
func (c *LangfuseClient) IsEnabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// StartTrace starts a new trace in Langfuse
func (c *LangfuseClient) StartTrace(ctx context.Context, name string, metadata map[string]interface{}) *Trace {
	if !c.IsEnabled() {
		return &Trace{enabled: false, ctx: ctx}
	}

	trace, err := c.client.Trace(&model.Trace{
		Name:     name,
		Metadata: metadata,
	})
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse trace: %v", err)
		return &Trace{enabled: false, ctx: ctx}
	}

	return &Trace{
		trace:   trace,
		enabled: true,
		ctx:     ctx,
		client:  c.client,
	}
}

// Trace represents a Langfuse trace
type Trace struct {
	trace   *model.Trace
	enabled bool
	ctx     context.Context
	client  *langfuse.Langfuse
}

// Observation opens a timed observation within the trace
func (t *Trace) Observation(name string, metadata map[string]interface{}) *Observation {
	if !t.enabled {
		return &Observation{enabled: false}
	}

	now := time.Now()
	gen, err := t.client.Generation(&model.Generation{
		TraceID:   t.trace.ID,
		Name:      name,
		StartTime: &now,
		Metadata:  metadata,
	}, nil)
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse observation: %v", err)
		return &Observation{enabled: false}
	}

	return &Observation{
		generation: gen,
		enabled:    true,
		client:     t.client,
	}
}

// Finish flushes the trace to Langfuse
func (t *Trace) Finish() {
	if t.enabled && t.client != nil {
		t.client.Flush(t.ctx)
	}
}

// Observation is a single bridge call inside a trace
type Observation struct {
	generation *model.Generation
	enabled    bool
	client     *langfuse.Langfuse
}

// Input sets the input for the observation
func (o *Observation) Input(input interface{}) {
	if o.enabled && o.generation != nil {
		o.generation.Input = input
	}
}

// Output sets the output for the observation
func (o *Observation) Output(output interface{}) {
	if o.enabled && o.generation != nil {
		o.generation.Output = output
	}
}

// Fail marks the observation as failed with the given message
func (o *Observation) Fail(msg string) {
	if o.enabled && o.generation != nil {
		o.generation.Level = model.ObservationLevel(levelError)
		o.generation.StatusMessage = msg
	}
}

// Finish completes the observation and queues it for sending
func (o *Observation) Finish() {
	if o.enabled && o.generation != nil && o.client != nil {
		now := time.Now()
		o.generation.EndTime = &now
		if _, err := o.client.GenerationEnd(o.generation); err != nil {
			log.Printf("⚠️  Failed to end Langfuse observation: %v", err)
		}
	}
}

// rawValue lets Langfuse store bridge JSON as structured data instead of a
// base64 byte string
func rawValue(data json.RawMessage) interface{} {
	if len(data) == 0 {
		return nil
	}
	return data
}
