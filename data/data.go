// Package data embeds the Toronto sample dataset served when no live feed is
// configured.
package data

import _ "embed"

// TorontoPOIs is a JSON array of records shaped as
// {"id", "type", "name", "location": [lat, lon], "description", "features"}.
//
//go:embed toronto-pois.json
var TorontoPOIs []byte
