package kvstore

import (
	"encoding/json"
	"reflect"
)

// decodeRecord unmarshals raw into dest through a scratch value, so a
// document of the wrong shape cannot leave dest partially populated.
// Reports whether the document decoded cleanly; on failure dest is
// untouched and the caller treats the entry as absent.
func decodeRecord(raw []byte, dest any) bool {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	scratch := reflect.New(rv.Type().Elem())
	if err := json.Unmarshal(raw, scratch.Interface()); err != nil {
		return false
	}
	rv.Elem().Set(scratch.Elem())
	return true
}
