package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/myliquor/myliquor-server/models"
	"github.com/myliquor/myliquor-server/realtime"
	"github.com/myliquor/myliquor-server/utils"
	"github.com/sirupsen/logrus"
)

// keepAliveInterval spaces out SSE comment frames so idle connections
// survive proxies that reap quiet streams.
const keepAliveInterval = 30 * time.Second

func isValidEventTable(table string) bool {
	return table == models.TableSales || table == models.TableSaleProducts || table == models.TableThemes
}

// StreamEvents serves a server-sent-events feed of row changes for one
// table. An optional sale_id query param narrows a sale_products stream to
// a single sale.
func StreamEvents(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	if !isValidEventTable(table) {
		utils.RespondError(w, http.StatusBadRequest, errors.New("unknown table: "+table), "Unknown event table")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, errors.New("response writer is not a flusher"), "Streaming unsupported")
		return
	}

	var filter realtime.Filter
	if saleID := r.URL.Query().Get("sale_id"); saleID != "" && table == models.TableSaleProducts {
		filter = realtime.SaleProductFilter(saleID)
	}

	sub := realtime.DefaultHub.Subscribe(table, filter)
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepAlive.C:
			if _, err := w.Write([]byte(": keep-alive\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case ev, open := <-sub.C:
			if !open {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				logrus.Errorf("Failed to marshal change event with error: %+v", err)
				continue
			}
			if _, err := w.Write([]byte("event: " + string(ev.Type) + "\ndata: " + string(payload) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
