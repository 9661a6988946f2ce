package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/net/netutil"

	c "github.com/d0ngw/visits/common"
)

const shutdownTimeout = 30 * time.Second

type tcpKeepAliveListener struct {
	*net.TCPListener
}

// Accept 接受连接并开启keep alive
func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	if err = tc.SetKeepAlive(true); err != nil {
		tc.Close()
		return nil, err
	}
	if err = tc.SetKeepAlivePeriod(3 * time.Minute); err != nil {
		tc.Close()
		return nil, err
	}
	return tc, nil
}

// GraceableHandler 安全地关闭的处理器
type GraceableHandler struct {
	handler   http.Handler
	waitGroup *sync.WaitGroup
}

func (p *GraceableHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.waitGroup.Add(1)
	defer p.waitGroup.Done()

	p.handler.ServeHTTP(w, r)
}

// Service Http服务
type Service struct {
	c.BaseService
	Conf         *Config
	listener     net.Listener
	serveMux     *http.ServeMux
	graceHandler *GraceableHandler
	server       *http.Server
	lock         sync.Mutex
}

// NewService 创建Http服务,Http服务最后启动,最先停止
func NewService(conf *Config) *Service {
	return &Service{
		BaseService: c.BaseService{SName: "http", Order: 100},
		Conf:        conf,
	}
}

// Init 初始化Http服务
func (p *Service) Init() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.Conf == nil {
		return fmt.Errorf("no http config")
	}
	if err := p.Conf.Parse(); err != nil {
		return err
	}

	serveMux := http.NewServeMux()
	p.Conf.controllerMux.RLock()
	for pattern, handler := range p.Conf.handles {
		if err := p.register(serveMux, pattern, handler); err != nil {
			p.Conf.controllerMux.RUnlock()
			return err
		}
	}
	p.Conf.controllerMux.RUnlock()

	graceHandler := &GraceableHandler{
		handler:   serveMux,
		waitGroup: &sync.WaitGroup{}}

	p.graceHandler = graceHandler
	p.server = &http.Server{
		Addr:         p.Conf.Addr,
		ReadTimeout:  seconds(p.Conf.ReadTimeout),
		WriteTimeout: seconds(p.Conf.WriteTimeout),
		Handler:      graceHandler}
	p.serveMux = serveMux
	return nil
}

// register converts the mux's pattern panics to errors
func (p *Service) register(serveMux *http.ServeMux, pattern string, handler *handlerWithMiddleware) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("register %s: %v", pattern, r)
		}
	}()
	serveMux.Handle(pattern, p.handleWithMiddleware(handler))
	return nil
}

// handleWithMiddleware 依次调用各个middleware,全局的在外层,handler自己的在内层
func (p *Service) handleWithMiddleware(handler *handlerWithMiddleware) http.HandlerFunc {
	middlewares := make([]Middleware, 0, len(p.Conf.middlewares)+len(handler.middlewares)+1)
	middlewares = append(middlewares, p.Conf.middlewares...)
	if p.Conf.HandlerTimeout > 0 {
		middlewares = append(middlewares, Timeout(seconds(p.Conf.HandlerTimeout)))
	}
	middlewares = append(middlewares, handler.middlewares...)

	h := handler.handlerFunc
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i].Handle(h)
	}
	return h
}

// Addr is the address the service listens at, valid after Start
func (p *Service) Addr() net.Addr {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.listener == nil {
		return nil
	}
	return p.listener.Addr()
}

// Start 启动Http服务,开始端口监听和服务处理
func (p *Service) Start() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.server == nil {
		return fmt.Errorf("http service not inited")
	}

	ln, err := net.Listen("tcp", p.Conf.Addr)
	if err != nil {
		return fmt.Errorf("listen at %s fail: %w", p.Conf.Addr, err)
	}
	c.Infof("Listen at %s", ln.Addr())

	var listener net.Listener = tcpKeepAliveListener{ln.(*net.TCPListener)}
	if p.Conf.MaxConns > 0 {
		listener = netutil.LimitListener(listener, p.Conf.MaxConns)
	}
	p.listener = listener

	server, graceHandler := p.server, p.graceHandler
	graceHandler.waitGroup.Add(1)
	go func() {
		defer graceHandler.waitGroup.Done()
		err := server.Serve(listener)
		if errors.Is(err, http.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
			c.Infof("server.Serve return with %v", err)
			return
		}
		c.Errorf("server.Serve return with %v", err)
	}()
	return nil
}

// Stop 停止Http服务,关闭端口监听,等待正在处理的请求结束
func (p *Service) Stop() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.server == nil {
		return nil
	}

	c.Infof("Waiting shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := p.server.Shutdown(ctx)
	if err != nil {
		c.Errorf("Shutdown http server error:%v", err)
		p.server.Close()
	}
	p.graceHandler.waitGroup.Wait()
	c.Infof("Finish shutdown")

	p.listener = nil
	p.graceHandler = nil
	p.server = nil
	p.serveMux = nil
	return err
}
