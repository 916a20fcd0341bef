// Package source links the bundled JSON drivers into a program. Importing it
// registers gojson, jsoniter and yaml by name and makes gojson the driver
// behind jxsmoln.JSONReader and jxsmoln.JSONBytes.
package source

import (
	jxsmoln "github.com/reoring/jxsmoln"
	drvgojson "github.com/reoring/jxsmoln/source/gojson"
	_ "github.com/reoring/jxsmoln/source/jsoniter"
	_ "github.com/reoring/jxsmoln/source/yaml"
)

// init lives in a separate package to avoid an import cycle with the root.
func init() { jxsmoln.SetJSONDriver(drvgojson.Driver()) }
