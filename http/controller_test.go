package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type DemoController struct {
	BaseController
}

func (p *DemoController) Index(w http.ResponseWriter, r *http.Request) {
	RenderText(w, "index:"+p.Name)
}

func (p *DemoController) NotHandler(s string) {}

func TestReflectHandlers(t *testing.T) {
	demo := &DemoController{BaseController{
		Name:           "demo",
		Path:           "/demo",
		PatternMethods: map[string]string{"GET /index": "Index", "/": "Index"},
	}}
	handlers, err := ReflectHandlers(demo)
	require.NoError(t, err)
	assert.Len(t, handlers, 2)
	assert.NotNil(t, handlers["GET /index"])

	demo.PatternMethods = map[string]string{"/": "Missing"}
	_, err = ReflectHandlers(demo)
	assert.Error(t, err)

	demo.PatternMethods = map[string]string{"/": "NotHandler"}
	_, err = ReflectHandlers(demo)
	assert.Error(t, err)

	var nilDemo *DemoController
	_, err = ReflectHandlers(nilDemo)
	assert.Error(t, err)
}

func TestJoinPattern(t *testing.T) {
	cases := []struct {
		prefix, pattern, expect string
	}{
		{"", "/read/{name}", "/read/{name}"},
		{"/", "GET /read/{name}", "GET /read/{name}"},
		{"/api/", "GET /read/{name}", "GET /api/read/{name}"},
		{"/api", "/health", "/api/health"},
		{"/api", "localhost/health", "localhost/health"},
		{"/api", "GET  localhost/health", "GET localhost/health"},
	}
	for _, cs := range cases {
		assert.Equal(t, cs.expect, joinPattern(cs.prefix, cs.pattern), "%s + %s", cs.prefix, cs.pattern)
	}
}

func TestRegControllerPrefix(t *testing.T) {
	conf := NewConfig("")
	demo := &DemoController{BaseController{
		Name:           "demo",
		Path:           "/demo/",
		PatternMethods: map[string]string{"GET /index": "Index"},
	}}
	require.NoError(t, conf.RegController(demo))
	assert.Equal(t, []string{"GET /demo/index"}, conf.Handles())
	assert.Error(t, conf.RegController(demo))
}
