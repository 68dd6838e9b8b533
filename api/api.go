// Package api exposes the moderation core over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"github.com/weareasocialyazilim/travelmatch-moderation/core"
)

type API struct {
	ServiceName string

	core *core.Core
	r    *mux.Router
	kw   *kafka.Writer
}

// New builds the HTTP API around a moderation core. kafkaWriter is the
// audit sink for moderation decisions; pass nil to disable auditing.
func New(name string, c *core.Core, kafkaWriter *kafka.Writer) (*API, error) {
	api := API{
		ServiceName: name,
		core:        c,
		r:           mux.NewRouter(),
		kw:          kafkaWriter,
	}
	api.endpoints()

	return &api, nil
}

func (api *API) Router() *mux.Router {
	return api.r
}

func (api *API) endpoints() {
	api.r.Use(api.requestIDMiddleware)
	api.r.Use(api.headerMiddleware)
	api.r.Use(api.loggingMiddleware)

	api.r.HandleFunc("/v1/filter", api.filterText).Methods(http.MethodPost)
	api.r.HandleFunc("/v1/check", api.checkText).Methods(http.MethodPost)
	api.r.HandleFunc("/v1/healthz", api.healthz).Methods(http.MethodGet)
}

// filterText runs the full pipeline and always returns the complete
// moderation result with status 200.
func (api *API) filterText(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	var req FilterRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[filterText][%s] failed to decode request body: %v", sID, err)
		return
	}
	defer r.Body.Close()

	result, err := api.core.CheckWithOptions(r.Context(), req.Text, req.filterOptions())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		log.Errorf("[filterText][%s] filter failed: %v", sID, err)
		return
	}
	api.audit(reqID, req.Text, result)

	err = json.NewEncoder(w).Encode(result)
	if err != nil {
		log.Errorf("[filterText][%s] failed to encode response: %v", sID, err)
	}
}

// checkText is the gatekeeper endpoint: 200 when the text may pass,
// 422 when it must be blocked. The body carries the result either way.
func (api *API) checkText(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())
	sID := shorten(reqID)

	var req FilterRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[checkText][%s] failed to decode request body: %v", sID, err)
		return
	}
	defer r.Body.Close()

	result, err := api.core.CheckWithOptions(r.Context(), req.Text, req.filterOptions())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		log.Errorf("[checkText][%s] filter failed: %v", sID, err)
		return
	}
	api.audit(reqID, req.Text, result)

	if result.Blocked {
		w.WriteHeader(http.StatusUnprocessableEntity)
		log.Infof("[checkText][%s] text blocked, severity:%s", sID, result.Severity)
	}

	err = json.NewEncoder(w).Encode(result)
	if err != nil {
		log.Errorf("[checkText][%s] failed to encode response: %v", sID, err)
	}
}

func (api *API) healthz(w http.ResponseWriter, r *http.Request) {
	err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	if err != nil {
		log.Errorf("[healthz] failed to encode response: %v", err)
	}
}

// shorten truncates a string to 6 characters if it is longer than 6, appends '...' at the end,
// otherwise it returns the string unchanged.
func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
