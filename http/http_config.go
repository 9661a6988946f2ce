// Package http 提供基本的http服务
package http

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	c "github.com/d0ngw/visits/common"
)

// Config Http配置
type Config struct {
	Addr           string `yaml:"addr"`            //Http监听地址
	ReadTimeout    int    `yaml:"read_timeout"`    //读超时,单位秒
	WriteTimeout   int    `yaml:"write_timeout"`   //写超时,单位秒
	MaxConns       int    `yaml:"max_conns"`       //最大的并发连接数
	HandlerTimeout int    `yaml:"handler_timeout"` //单个请求的处理超时,单位秒,0表示不限制

	middlewares   []Middleware                      //过滤操作
	controllers   []Controller                      //controller
	handles       map[string]*handlerWithMiddleware //handles
	controllerMux sync.RWMutex
}

// NewConfig 创建配置
func NewConfig(addr string) *Config {
	conf := &Config{Addr: addr}
	conf.ensureInit()
	return conf
}

func (p *Config) ensureInit() {
	if p.handles == nil {
		p.handles = map[string]*handlerWithMiddleware{}
	}
}

// Parse implements Configurer
func (p *Config) Parse() error {
	if p.Addr == "" {
		p.Addr = ":http"
	}
	if p.ReadTimeout < 0 || p.WriteTimeout < 0 || p.HandlerTimeout < 0 {
		return fmt.Errorf("invalid http timeout,read:%d,write:%d,handler:%d", p.ReadTimeout, p.WriteTimeout, p.HandlerTimeout)
	}
	if p.MaxConns < 0 {
		return fmt.Errorf("invalid max_conns %d", p.MaxConns)
	}
	p.ensureInit()
	return nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Handles returns the registered patterns
func (p *Config) Handles() []string {
	p.controllerMux.RLock()
	defer p.controllerMux.RUnlock()

	patterns := make([]string, 0, len(p.handles))
	for pattern := range p.handles {
		patterns = append(patterns, pattern)
	}
	return patterns
}

// RegController 注册controller中PatternMethods声明的所有处理函数
func (p *Config) RegController(controller Controller) error {
	if c.HasNil(controller) {
		return fmt.Errorf("Can't reg nil controller")
	}

	handlers, err := ReflectHandlers(controller)
	if err != nil {
		return err
	}
	if len(handlers) == 0 {
		c.Warnf("Can't find handler in %T", controller)
		return nil
	}

	p.controllerMux.Lock()
	defer p.controllerMux.Unlock()
	p.ensureInit()

	p.controllers = append(p.controllers, controller)
	for pattern, h := range handlers {
		patternPath := joinPattern(controller.GetPath(), pattern)
		if err := p.regHandleFunc(patternPath, &handlerWithMiddleware{handlerFunc: h}); err != nil {
			return err
		}
		c.Infof("Register controller %T#%s,pattern:%s", controller, controller.GetName(), patternPath)
	}
	return nil
}

// joinPattern 将controller的路径前缀加到pattern的路径上,带有host的pattern保持不变
// 例如 "/api" + "GET /read/{name}" -> "GET /api/read/{name}"
func joinPattern(prefix, pattern string) string {
	var method string
	if i := strings.IndexAny(pattern, " \t"); i >= 0 {
		method, pattern = pattern[:i], strings.TrimLeft(pattern[i:], " \t")
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix != "" && strings.HasPrefix(pattern, "/") {
		pattern = prefix + pattern
	}
	if method != "" {
		return method + " " + pattern
	}
	return pattern
}

func (p *Config) regHandleFunc(patternPath string, handle *handlerWithMiddleware) error {
	if _, ok := p.handles[patternPath]; ok {
		return fmt.Errorf("Duplicate ,pattern:%s", patternPath)
	}
	p.handles[patternPath] = handle
	return nil
}

// RegHandleFunc 注册patternPath的处理函数handlerFunc
func (p *Config) RegHandleFunc(patternPath string, handlerFunc http.HandlerFunc, middlewares ...Middleware) error {
	if handlerFunc == nil {
		return fmt.Errorf("Can't reg nil handlerFunc to %s", patternPath)
	}
	p.controllerMux.Lock()
	defer p.controllerMux.Unlock()
	p.ensureInit()
	return p.regHandleFunc(patternPath, &handlerWithMiddleware{handlerFunc: handlerFunc, middlewares: middlewares})
}

// RegMiddleware 注册全局的middleware,按注册顺序由外到内调用
func (p *Config) RegMiddleware(middleware Middleware) error {
	if c.HasNil(middleware) {
		return fmt.Errorf("invalid middleware")
	}
	p.controllerMux.Lock()
	defer p.controllerMux.Unlock()
	p.middlewares = append(p.middlewares, middleware)
	return nil
}
