package http

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	c "github.com/d0ngw/visits/common"
)

// Middleware 包装处理函数
type Middleware interface {
	Handle(next http.HandlerFunc) http.HandlerFunc
}

// MiddlewareFunc 函数形式的Middleware
type MiddlewareFunc func(next http.HandlerFunc) http.HandlerFunc

// Handle implements Middleware
func (f MiddlewareFunc) Handle(next http.HandlerFunc) http.HandlerFunc {
	return f(next)
}

type handlerWithMiddleware struct {
	handlerFunc http.HandlerFunc
	middlewares []Middleware
}

// statusWriter 记录响应的状态码和长度
type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func wrapStatusWriter(w http.ResponseWriter) *statusWriter {
	if sw, ok := w.(*statusWriter); ok {
		return sw
	}
	return &statusWriter{ResponseWriter: w}
}

// AccessLog 记录每个请求的访问日志
func AccessLog() Middleware {
	return MiddlewareFunc(func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := wrapStatusWriter(w)
			next(sw, r)
			if !c.InfoEnabled() {
				return
			}
			status := sw.status
			if status == 0 {
				status = http.StatusOK
			}
			c.Infof("%s %s %s %d %d %s", r.RemoteAddr, r.Method, r.URL.RequestURI(), status, sw.size, time.Since(start))
		}
	})
}

// Recover 处理函数panic时记录日志,响应500
func Recover() Middleware {
	return MiddlewareFunc(func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			sw := wrapStatusWriter(w)
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					c.Errorf("handle %s panic:%v\n%s", r.URL.RequestURI(), err, debug.Stack())
					if sw.status == 0 {
						http.Error(sw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					}
				}
			}()
			next(sw, r)
		}
	})
}

// Timeout 限制请求context的时长,d<=0时不限制
func Timeout(d time.Duration) Middleware {
	return MiddlewareFunc(func(next http.HandlerFunc) http.HandlerFunc {
		if d <= 0 {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next(w, r.WithContext(ctx))
		}
	})
}
