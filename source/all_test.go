package source_test

import (
	"testing"

	jxsmoln "github.com/reoring/jxsmoln"
	_ "github.com/reoring/jxsmoln/source"
)

func TestBundledDriversRegistered(t *testing.T) {
	for _, name := range []string{"json", "gojson", "jsoniter", "yaml"} {
		if _, err := jxsmoln.DriverByName(name); err != nil {
			t.Fatalf("driver %s not registered: %v", name, err)
		}
	}
	v, err := jxsmoln.ReadJSONValue(jxsmoln.JSONBytes([]byte(`{"a":[1,2.5]}`)))
	if err != nil {
		t.Fatalf("default driver: %v", err)
	}
	if got := v.String(); got != `{"a":[1,2.5]}` {
		t.Fatalf("unexpected value %s", got)
	}
}
