package http

import (
	"fmt"
	"net/http"
	"reflect"
)

// Controller 接口定义http处理器
type Controller interface {
	// 控制器的名称
	GetName() string
	// 路径前缀,会加到PatternMethods中每个pattern的路径上
	GetPath() string
	// pattern -> 处理方法名,pattern使用http.ServeMux的格式,如"GET /read/{name}"
	GetPatternMethods() map[string]string
}

// BaseController 表示一个控制器
type BaseController struct {
	Name           string            // Controller的名称
	Path           string            // Controller的路径
	PatternMethods map[string]string // pattern -> method name
}

// GetName implements Controller
func (p *BaseController) GetName() string {
	return p.Name
}

// GetPath implements Controller
func (p *BaseController) GetPath() string {
	return p.Path
}

// GetPatternMethods implements Controller
func (p *BaseController) GetPatternMethods() map[string]string {
	return p.PatternMethods
}

var handlerFuncType = reflect.TypeOf(http.HandlerFunc(nil))

// ReflectHandlers 按PatternMethods查找controller中的处理方法,方法的类型必须是http.HandlerFunc
func ReflectHandlers(controller Controller) (handlers map[string]http.HandlerFunc, err error) {
	val := reflect.ValueOf(controller)
	if !val.IsValid() || val.Kind() != reflect.Ptr || val.IsNil() {
		return nil, fmt.Errorf("controller must be a valid pointer")
	}

	handlers = map[string]http.HandlerFunc{}
	for pattern, methodName := range controller.GetPatternMethods() {
		method := val.MethodByName(methodName)
		if !method.IsValid() {
			return nil, fmt.Errorf("%T has no method %s for pattern %s", controller, methodName, pattern)
		}
		if !method.Type().ConvertibleTo(handlerFuncType) {
			return nil, fmt.Errorf("%T#%s is not a http.HandlerFunc", controller, methodName)
		}
		handlers[pattern] = method.Convert(handlerFuncType).Interface().(http.HandlerFunc)
	}
	return handlers, nil
}
