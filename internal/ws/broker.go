package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"market-service/internal/models"
	"market-service/internal/observability"
)

// Broker fans an already-persisted message out to the room's live
// subscribers. It holds no state of its own beyond the registry it reads.
type Broker struct {
	registry *Registry
}

// NewBroker constructs a Broker over the given registry.
func NewBroker(registry *Registry) *Broker {
	return &Broker{registry: registry}
}

type pushResult struct {
	sub *Subscription
	err error
}

// Publish pushes the message to every subscriber in the registry snapshot
// taken at call time. A failed push never aborts delivery to the others and
// never surfaces as an error: the dead connection is closed, unsubscribed and
// reported as a registry hygiene event. Zero subscribers is the normal case
// when the counterpart is offline.
func (b *Broker) Publish(roomID int, msg models.Message) {
	subs := b.registry.SubscribersOf(roomID)
	if len(subs) == 0 {
		return
	}

	payload := msg.Payload()
	event := models.RoomEvent{Type: "message", Message: &payload}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal room event: %v", err)
		return
	}

	results := make([]pushResult, 0, len(subs))
	for _, sub := range subs {
		results = append(results, pushResult{sub: sub, err: sub.Send(data)})
	}

	delivered := 0
	for _, res := range results {
		if res.err == nil {
			delivered++
			observability.IncBrokerPush("delivered")
			continue
		}
		observability.IncBrokerPush("failed")
		log.Printf("websocket write error: %v", res.err)
		res.sub.conn.Close()
		b.registry.Unsubscribe(res.sub)
		b.publishWSError(roomID, res.sub, res.err)
	}
	if delivered < len(results) {
		log.Printf("room %d publish: delivered %d/%d", roomID, delivered, len(results))
	}
}

func (b *Broker) publishWSError(roomID int, sub *Subscription, err error) {
	info := sub.Info
	payload := map[string]interface{}{
		"ws": map[string]interface{}{
			"room_id":     roomID,
			"event":       "ws_error",
			"conn_id":     info.ConnID,
			"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
			"reason":      err.Error(),
		},
		"identity": map[string]interface{}{
			"user_id":   info.UserID,
			"device_id": info.DeviceID,
			"ip":        info.IP,
		},
	}

	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	_ = observability.PublishEvent(context.Background(), "ws_events.rooms", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: "ws_error",
		Payload:   payload,
	}, headers)
	observability.IncWSEvent("ws_error")
}
