package domain

import "encoding/json"

// EncodeValue renders a data-point value in its canonical wire form. The
// store compares encoded forms to suppress no-op writes, and the announcer
// publishes the same bytes, so both must go through here.
func EncodeValue(value any) ([]byte, error) {
	return json.Marshal(value)
}
