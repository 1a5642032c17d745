package codec

import (
	"reflect"

	"github.com/reoring/skema/dsl"
)

// InstanceOf returns a validator accepting values of type T. It is meant for
// already-decoded Go values such as response payload structs.
func InstanceOf[T any]() *dsl.InstanceType {
	rt := reflect.TypeFor[T]()
	return dsl.Instance(rt.String(), rt)
}
