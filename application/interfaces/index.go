package interfaces

import (
	"net/http"
)

// ApplicationContext is the transport-agnostic request context handed to
// controllers. Ctx carries the underlying framework context (gin).
type ApplicationContext[T interface{}] struct {
	Ctx        interface{}
	Body       *T
	Keys       map[string]any
	Header     http.Header
	DeviceID   string
	DeviceName string
	UserAgent  string
}

func (ac *ApplicationContext[T]) SetContextData(key string, value any) {
	if ac.Keys == nil {
		ac.Keys = map[string]any{}
	}
	ac.Keys[key] = value
}

func (ac *ApplicationContext[T]) GetContextData(key string) any {
	if ac.Keys == nil {
		return nil
	}
	return ac.Keys[key]
}

func (ac *ApplicationContext[T]) GetStringContextData(key string) string {
	value, ok := ac.GetContextData(key).(string)
	if !ok {
		return ""
	}
	return value
}

func (ac *ApplicationContext[T]) GetIntContextData(key string) int {
	value, ok := ac.GetContextData(key).(int)
	if !ok {
		return 0
	}
	return value
}

func (ac *ApplicationContext[T]) GetBoolContextData(key string) bool {
	value, ok := ac.GetContextData(key).(bool)
	if !ok {
		return false
	}
	return value
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	if ac.Header == nil {
		return nil
	}
	value := ac.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}
