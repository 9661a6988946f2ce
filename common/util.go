package common

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"sync"
	"syscall"
)

// ErrUnavailable is returned when a backing store can not be reached within the wait budget
var ErrUnavailable = errors.New("store unavailable")

// HasNil 检查参数中是否有nil值,包括值为nil的指针/接口/函数等
func HasNil(params ...interface{}) bool {
	for _, p := range params {
		if p == nil {
			return true
		}
		val := reflect.ValueOf(p)
		switch val.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan:
			if val.IsNil() {
				return true
			}
		}
	}
	return false
}

// IsEmpty 检查字符串中是否有空字符串(去掉首尾空白后)
func IsEmpty(strs ...string) bool {
	for _, s := range strs {
		if strings.TrimSpace(s) == "" {
			return true
		}
	}
	return false
}

// Shutdownhook 进程退出时依次执行注册的函数
type Shutdownhook struct {
	ch         chan os.Signal //接收信号的channel
	hooks      []func()       //停机时需要调用的方法列表
	sync.Mutex                //同步锁
}

// NewShutdownhook 创建一个Shutdownhook,sig是要监听的信号,默认会监听syscall.SIGINT,syscall.SIGTERM
func NewShutdownhook(sig ...os.Signal) *Shutdownhook {
	if len(sig) == 0 {
		sig = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}
	ch := make(chan os.Signal, len(sig))
	signal.Notify(ch, sig...)
	return &Shutdownhook{ch: ch}
}

// AddHook 增加一个Hook函数
func (p *Shutdownhook) AddHook(hookFunc func()) {
	p.Lock()
	defer p.Unlock()
	p.hooks = append(p.hooks, hookFunc)
}

// WaitShutdown 等待进程退出的信号或者ctx结束,然后依次执行注册的hook函数
func (p *Shutdownhook) WaitShutdown(ctx context.Context) {
	p.Lock()
	defer p.Unlock()

	if p.ch == nil {
		panic("signal channel is nil")
	}

	select {
	case s := <-p.ch:
		Infof("Receive signal:%v,Run hooks", s)
	case <-ctx.Done():
		Infof("Context done:%v,Run hooks", ctx.Err())
	}
	signal.Stop(p.ch)
	p.ch = nil

	for _, f := range p.hooks {
		f()
	}
	Infof("Finished run hooks")
}
