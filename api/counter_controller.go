// Package api exposes the counters over http
package api

import (
	"errors"
	"fmt"
	"net/http"

	c "github.com/d0ngw/visits/common"
	"github.com/d0ngw/visits/counter"
	h "github.com/d0ngw/visits/http"
)

// CounterController serves the counter endpoints
type CounterController struct {
	h.BaseController
	service *counter.Service
}

// NewCounterController create the controller on service, path is the prefix of all endpoints
func NewCounterController(service *counter.Service, path string) (*CounterController, error) {
	if service == nil {
		return nil, fmt.Errorf("no counter service")
	}
	return &CounterController{
		BaseController: h.BaseController{
			Name: "counter",
			Path: path,
			PatternMethods: map[string]string{
				"GET /read/{name}":      "Read",
				"GET /read/{$}":         "Read",
				"GET /increment/{name}": "Increment",
				"GET /increment/{$}":    "Increment",
				"GET /health":           "Health",
			},
		},
		service: service,
	}, nil
}

// Read responds with the current value of the counter, never creating it
func (p *CounterController) Read(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	visits, err := p.service.GetVisits(r.Context(), name)
	if err != nil {
		renderError(w, r, err)
		return
	}
	h.RenderText(w, fmt.Sprintf("Current counter value: %d", visits))
}

// Increment adds one visit and responds with the new value
func (p *CounterController) Increment(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	visits, err := p.service.IncrementVisits(r.Context(), name)
	if err != nil {
		renderError(w, r, err)
		return
	}
	h.RenderText(w, fmt.Sprintf("Updated counter value: %d", visits))
}

// Health reports the kind of the backing store
func (p *CounterController) Health(w http.ResponseWriter, r *http.Request) {
	h.RenderJSON(w, &h.Resp{
		Success: true,
		Data:    map[string]string{"store": p.service.Store().Kind()},
	})
}

// renderError never writes the cause to the client
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, counter.ErrInvalidName) {
		h.RenderError(w, http.StatusBadRequest)
		return
	}
	c.Errorf("%s %s fail:%v", r.Method, r.URL.Path, err)
	h.RenderError(w, http.StatusInternalServerError)
}
