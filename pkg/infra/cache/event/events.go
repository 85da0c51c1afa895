package event

import "reflect"

type Event interface {
	Type() string
}

const (
	UpdatePolicyCacheEventType = "UpdatePolicyCacheEvent"
	DeletePolicyCacheEventType = "DeletePolicyCacheEvent"
)

var Registry = map[string]reflect.Type{
	UpdatePolicyCacheEventType: reflect.TypeOf(UpdatePolicyCacheEvent{}),
	DeletePolicyCacheEventType: reflect.TypeOf(DeletePolicyCacheEvent{}),
}
