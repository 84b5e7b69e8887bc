package websocket

import (
	"context"
	"log"
	"time"

	"workorder_invoicing/internal/domain/entities"
	"workorder_invoicing/internal/usecase/interfaces"
)

const SnapshotType = "active_work_orders"

// Snapshot is the full active list pushed to dashboards.
type Snapshot struct {
	Type        string               `json:"type"`
	Trigger     string               `json:"trigger,omitempty"`
	GeneratedAt time.Time            `json:"generated_at"`
	WorkOrders  []entities.WorkOrder `json:"work_orders"`
}

// ActiveLister returns the active dashboard list (unfiltered).
type ActiveLister func(ctx context.Context) ([]entities.WorkOrder, error)

// DashboardPublisher recomputes the active list on every lifecycle event and broadcasts it.
type DashboardPublisher struct {
	hub  *Hub
	list ActiveLister
}

var _ interfaces.IEventPublisher = (*DashboardPublisher)(nil)

func NewDashboardPublisher(hub *Hub, list ActiveLister) *DashboardPublisher {
	return &DashboardPublisher{hub: hub, list: list}
}

// Snapshot builds the current snapshot; trigger is the event type that caused it.
func (p *DashboardPublisher) Snapshot(ctx context.Context, trigger string) (Snapshot, error) {
	wos, err := p.list(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if wos == nil {
		wos = []entities.WorkOrder{}
	}
	return Snapshot{Type: SnapshotType, Trigger: trigger, GeneratedAt: time.Now().UTC(), WorkOrders: wos}, nil
}

func (p *DashboardPublisher) Publish(ctx context.Context, evt entities.LifecycleEvent) error {
	if p.hub.Clients() == 0 {
		return nil
	}
	snap, err := p.Snapshot(ctx, evt.EventType)
	if err != nil {
		log.Printf("[dashboard][publisher] snapshot failed trigger=%s err=%v", evt.EventType, err)
		return err
	}
	p.hub.Broadcast(snap)
	return nil
}
