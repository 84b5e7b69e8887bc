package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// EventProducerName is stamped on every published lifecycle event.
const EventProducerName = "workorder-invoicing"

var (
	errCounterNotConfigured = errors.New("invoice counter repository not configured")
	errAtomicNoFallback     = errors.New("atomic allocation has no scan fallback")
)

func utcNow() time.Time { return time.Now().UTC() }

// publishEvent never fails the caller: events are notifications, the store is the truth.
func publishEvent(ctx context.Context, pub interfaces.IEventPublisher, eventType, key string, payload any) {
	if pub == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[events][usecase] payload marshal failed type=%s key=%s err=%v", eventType, key, err)
		return
	}
	evt := entities.LifecycleEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		Version:    1,
		OccurredAt: utcNow(),
		Producer:   EventProducerName,
		Key:        key,
		Payload:    raw,
	}
	if err := pub.Publish(ctx, evt); err != nil {
		log.Printf("[events][usecase] publish failed type=%s key=%s err=%v", eventType, key, err)
	}
}

func workOrderPayload(w entities.WorkOrder, from string) entities.WorkOrderEventPayload {
	return entities.WorkOrderEventPayload{
		WorkOrderID:   w.ID,
		CustomerClass: w.CustomerClass,
		InvoiceNumber: w.InvoiceNumber,
		FromStatus:    from,
		Status:        w.Status,
	}
}
