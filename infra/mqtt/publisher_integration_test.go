//go:build !no_containers

package mqtt

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/kilianp07/roadrisk/core/model"
	"github.com/kilianp07/roadrisk/test/util"
)

func TestRetainedAssessmentReachesLateSubscriber(t *testing.T) {
	ctx := context.Background()
	broker, cleanup, err := util.StartMosquitto(ctx)
	if err != nil {
		t.Skipf("mosquitto: %v", err)
	}
	defer cleanup()

	pub, err := NewPahoPublisher(Config{Enabled: true, Broker: broker, ClientID: "pub", QoS: 1})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	defer pub.Disconnect()

	a := sampleAssessment()
	if err := pub.PublishAssessment(ctx, a); err != nil {
		t.Fatalf("publish: %v", err)
	}

	readCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	for _, topic := range []string{pub.LatestTopic(), pub.RoadTopic(a.RoadName)} {
		payload, err := util.ReadRetained(readCtx, broker, topic)
		if err != nil {
			t.Fatalf("read %s: %v", topic, err)
		}
		var got model.Assessment
		if err := json.Unmarshal(payload, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != a.ID || got.Priority != model.PriorityHigh {
			t.Fatalf("unexpected assessment on %s: %+v", topic, got)
		}
	}
}
