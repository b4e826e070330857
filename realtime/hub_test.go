package realtime

import (
	"testing"
	"time"

	"github.com/myliquor/myliquor-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) models.ChangeEvent {
	t.Helper()
	select {
	case ev, ok := <-sub.C:
		require.True(t, ok, "subscription closed unexpectedly")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return models.ChangeEvent{}
	}
}

func TestHubDeliversInPublishOrder(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(models.TableSales, nil)
	defer sub.Close()

	first := models.Sale{ID: "s1", Name: "First"}
	second := models.Sale{ID: "s2", Name: "Second"}
	hub.Publish(models.ChangeEvent{Table: models.TableSales, Type: models.EventInsert, New: first})
	hub.Publish(models.ChangeEvent{Table: models.TableSales, Type: models.EventUpdate, New: second})

	ev := receive(t, sub)
	assert.Equal(t, models.EventInsert, ev.Type)
	assert.Equal(t, first, ev.New)

	ev = receive(t, sub)
	assert.Equal(t, models.EventUpdate, ev.Type)
}

func TestHubRoutesByTable(t *testing.T) {
	hub := NewHub()
	sales := hub.Subscribe(models.TableSales, nil)
	defer sales.Close()
	themes := hub.Subscribe(models.TableThemes, nil)
	defer themes.Close()

	hub.Publish(models.ChangeEvent{Table: models.TableThemes, Type: models.EventInsert, New: models.Theme{ID: "t1"}})

	ev := receive(t, themes)
	assert.Equal(t, models.TableThemes, ev.Table)

	select {
	case ev := <-sales.C:
		t.Fatalf("sales subscriber received %s event for table %s", ev.Type, ev.Table)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSaleProductFilter(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(models.TableSaleProducts, SaleProductFilter("sale-1"))
	defer sub.Close()

	hub.Publish(models.ChangeEvent{Table: models.TableSaleProducts, Type: models.EventInsert,
		New: models.SaleProduct{ID: "p1", SaleID: "sale-2"}})
	hub.Publish(models.ChangeEvent{Table: models.TableSaleProducts, Type: models.EventInsert,
		New: models.SaleProduct{ID: "p2", SaleID: "sale-1"}})
	hub.Publish(models.ChangeEvent{Table: models.TableSaleProducts, Type: models.EventDelete,
		Old: models.SaleProduct{ID: "p3", SaleID: "sale-1"}})

	ev := receive(t, sub)
	assert.Equal(t, "p2", ev.New.(models.SaleProduct).ID)

	ev = receive(t, sub)
	assert.Equal(t, "p3", ev.Old.(models.SaleProduct).ID)
}

func TestSubscriptionCloseIsIdempotent(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(models.TableSales, nil)

	sub.Close()
	sub.Close()

	_, open := <-sub.C
	assert.False(t, open)

	// publishing after close must not panic
	hub.Publish(models.ChangeEvent{Table: models.TableSales, Type: models.EventInsert, New: models.Sale{ID: "s1"}})
}

func TestHubDropsEventsForSlowSubscriber(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(models.TableSales, nil)
	defer sub.Close()

	// overflow the buffer without reading; Publish must never block
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriptionBuffer*2; i++ {
			hub.Publish(models.ChangeEvent{Table: models.TableSales, Type: models.EventInsert, New: models.Sale{ID: "s"}})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestApplySaleEvent(t *testing.T) {
	older := models.Sale{ID: "s1", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := models.Sale{ID: "s2", CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	sales := []models.Sale{newer, older}

	inserted := models.Sale{ID: "s3", CreatedAt: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)}
	out := ApplySaleEvent(sales, models.ChangeEvent{Table: models.TableSales, Type: models.EventInsert, New: inserted})
	require.Len(t, out, 3)
	assert.Equal(t, "s3", out[0].ID)

	renamed := newer
	renamed.Name = "Renamed"
	out = ApplySaleEvent(out, models.ChangeEvent{Table: models.TableSales, Type: models.EventUpdate, New: renamed})
	assert.Equal(t, "Renamed", out[1].Name)

	out = ApplySaleEvent(out, models.ChangeEvent{Table: models.TableSales, Type: models.EventDelete, Old: older})
	require.Len(t, out, 2)
	for _, s := range out {
		assert.NotEqual(t, "s1", s.ID)
	}
}

func TestApplyProductEventKeepsPositionOrder(t *testing.T) {
	products := []models.SaleProduct{
		{ID: "p1", Position: 0},
		{ID: "p2", Position: 1},
	}

	inserted := models.SaleProduct{ID: "p3", Position: 0}
	moved := models.SaleProduct{ID: "p1", Position: 2}

	out := ApplyProductEvent(products, models.ChangeEvent{Type: models.EventInsert, New: inserted})
	require.Len(t, out, 3)

	out = ApplyProductEvent(out, models.ChangeEvent{Type: models.EventUpdate, New: moved})
	require.Len(t, out, 3)
	assert.Equal(t, "p1", out[2].ID)

	out = ApplyProductEvent(out, models.ChangeEvent{Type: models.EventDelete, Old: models.SaleProduct{ID: "p2"}})
	require.Len(t, out, 2)
}

func TestApplyEventIgnoresWrongPayloadType(t *testing.T) {
	sales := []models.Sale{{ID: "s1"}}
	out := ApplySaleEvent(sales, models.ChangeEvent{Type: models.EventInsert, New: "not a sale"})
	assert.Equal(t, sales, out)
}
