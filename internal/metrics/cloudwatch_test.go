package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloudWatch struct {
	mu     sync.Mutex
	inputs []*cloudwatch.PutMetricDataInput
	done   chan struct{}
}

func newFakeCloudWatch(expected int) *fakeCloudWatch {
	return &fakeCloudWatch{done: make(chan struct{}, expected)}
}

func (f *fakeCloudWatch) PutMetricData(
	_ context.Context, params *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options),
) (*cloudwatch.PutMetricDataOutput, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, params)
	f.mu.Unlock()
	f.done <- struct{}{}
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func (f *fakeCloudWatch) wait(t *testing.T, n int) map[string]float64 {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-f.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for metric %d of %d", i+1, n)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	values := make(map[string]float64)
	for _, in := range f.inputs {
		assert.Equal(t, namespace, aws.ToString(in.Namespace))
		for _, datum := range in.MetricData {
			values[aws.ToString(datum.MetricName)] = aws.ToFloat64(datum.Value)
		}
	}
	return values
}

func TestNewClientDisabledOutsideProduction(t *testing.T) {
	client, err := NewClient(context.Background(), "development")
	require.NoError(t, err)
	assert.False(t, client.Enabled())

	// no-ops, nothing to panic on
	client.RecordAPIRequest("/api/v1/generate", 200, time.Second)
	client.ObserveBridgeCall(context.Background(), "generate_music", time.Second, nil)
}

func TestObserveBridgeCall(t *testing.T) {
	fake := newFakeCloudWatch(2)
	client := NewClientWithAPI(fake, "production")

	client.ObserveBridgeCall(context.Background(), "interrogate", 250*time.Millisecond, errors.New("boom"))

	values := fake.wait(t, 2)
	assert.Equal(t, 1.0, values["BridgeErrors"])
	assert.Equal(t, 250.0, values["BridgeLatency"])
}

func TestRecordAPIRequest(t *testing.T) {
	fake := newFakeCloudWatch(2)
	client := NewClientWithAPI(fake, "production")

	client.RecordAPIRequest("/api/v1/emotions", 502, 40*time.Millisecond)

	values := fake.wait(t, 2)
	assert.Equal(t, 1.0, values["APIErrors"])
	assert.Equal(t, 40.0, values["APILatency"])
}
