package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	c "github.com/d0ngw/visits/common"
)

type MockController struct {
	BaseController
}

func (p *MockController) Index(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		w.Write([]byte("Error:" + err.Error()))
		return
	}
	ret := fmt.Sprintf("method:%s, param id:%s, path id:%s", r.Method, r.FormValue("id"), r.PathValue("id"))
	w.Write([]byte(ret))
}

func (p *MockController) Panic(w http.ResponseWriter, r *http.Request) {
	panic("mock panic")
}

func startService(t *testing.T, conf *Config) (*Service, string) {
	svc := NewService(conf)
	services := c.NewServices(svc)
	require.NoError(t, services.Init())
	require.NoError(t, services.Start())
	t.Cleanup(func() {
		assert.NoError(t, services.Stop())
	})
	return svc, "http://" + svc.Addr().String()
}

func TestHttpServer(t *testing.T) {
	controller := &MockController{
		BaseController: BaseController{
			Name: "Mock",
			Path: "/",
			PatternMethods: map[string]string{
				"/{$}":            "Index",
				"GET /index/{id}": "Index",
				"/panic":          "Panic",
			},
		},
	}

	httpConfig := NewConfig("127.0.0.1:0")
	require.NoError(t, httpConfig.RegMiddleware(AccessLog()))
	require.NoError(t, httpConfig.RegMiddleware(Recover()))
	require.NoError(t, httpConfig.RegController(controller))
	assert.Len(t, httpConfig.Handles(), 3)

	_, base := startService(t, httpConfig)

	client := &http.Client{}
	ret, err := GetURL(client, base, nil)
	assert.NoError(t, err)
	assert.EqualValues(t, "method:GET, param id:, path id:", ret)

	ret, err = GetURL(client, base+"/index/id1?id=id2", nil)
	assert.NoError(t, err)
	assert.EqualValues(t, "method:GET, param id:id2, path id:id1", ret)

	status, body, err := GetURLStatus(client, base+"/panic", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal Server Error", body)

	status, _, err = GetURLStatus(client, base+"/index/a/b", nil)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, status)

	resp, err := client.Post(base+"/index/id1", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServiceStop(t *testing.T) {
	conf := NewConfig("127.0.0.1:0")
	require.NoError(t, conf.RegHandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		RenderText(w, "ok")
	}))
	svc := NewService(conf)
	services := c.NewServices(svc)
	require.NoError(t, services.Init())
	require.NoError(t, services.Start())

	base := "http://" + svc.Addr().String()
	ret, err := GetURL(&http.Client{}, base, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", ret)

	require.NoError(t, services.Stop())
	assert.Equal(t, c.TERMINATED, svc.State())
	assert.Nil(t, svc.Addr())

	_, err = GetURL(&http.Client{}, base, nil)
	assert.Error(t, err)
}

func TestServiceInvalidPattern(t *testing.T) {
	conf := NewConfig("127.0.0.1:0")
	require.NoError(t, conf.RegHandleFunc("GET /{a}/{a}", func(w http.ResponseWriter, r *http.Request) {}))
	svc := NewService(conf)
	assert.Error(t, svc.Init())
}

func TestServiceNotInited(t *testing.T) {
	svc := NewService(NewConfig("127.0.0.1:0"))
	assert.Error(t, svc.Start())
	assert.NoError(t, svc.Stop())
}

func TestConfigParse(t *testing.T) {
	conf := &Config{}
	require.NoError(t, conf.Parse())
	assert.Equal(t, ":http", conf.Addr)

	conf = &Config{Addr: ":80", ReadTimeout: -1}
	assert.Error(t, conf.Parse())

	conf = &Config{Addr: ":80", MaxConns: -1}
	assert.Error(t, conf.Parse())
}

func TestRegHandleFunc(t *testing.T) {
	conf := NewConfig("")
	h := func(w http.ResponseWriter, r *http.Request) {}
	assert.NoError(t, conf.RegHandleFunc("/a", h))
	assert.Error(t, conf.RegHandleFunc("/a", h))
	assert.Error(t, conf.RegHandleFunc("/b", nil))
	assert.Error(t, conf.RegMiddleware(nil))
	assert.Error(t, conf.RegController(nil))
}
