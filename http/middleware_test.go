package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMiddlewareOrder(t *testing.T) {
	var calls []string
	mark := func(name string) Middleware {
		return MiddlewareFunc(func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next(w, r)
			}
		})
	}

	conf := NewConfig("")
	assert.NoError(t, conf.RegMiddleware(mark("global")))
	assert.NoError(t, conf.Parse())
	svc := NewService(conf)
	h := svc.handleWithMiddleware(&handlerWithMiddleware{
		handlerFunc: func(w http.ResponseWriter, r *http.Request) { calls = append(calls, "handler") },
		middlewares: []Middleware{mark("own")},
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"global", "own", "handler"}, calls)
}

func TestRecover(t *testing.T) {
	h := Recover().Handle(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// the status already sent is kept
	h = Recover().Handle(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("boom")
	})
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestAccessLog(t *testing.T) {
	var sw *statusWriter
	h := AccessLog().Handle(func(w http.ResponseWriter, r *http.Request) {
		sw = w.(*statusWriter)
		http.Error(w, "missing", http.StatusNotFound)
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, sw.status)
	assert.Equal(t, len("missing\n"), sw.size)
}

func TestTimeout(t *testing.T) {
	var deadline time.Time
	var ok bool
	h := Timeout(time.Second).Handle(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)

	h = Timeout(0).Handle(func(w http.ResponseWriter, r *http.Request) {
		_, ok = r.Context().Deadline()
	})
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()))
	assert.False(t, ok)
}
