package snapshot

import (
	"github.com/xeipuuv/gojsonschema"
	"github.com/zarlcorp/credupi/internal/upi"
)

// schema describes a persisted snapshot. Only complete snapshots are ever
// written, so partial identifier sets are rejected here.
var schema = mustCompile(snapshotSchema())

func snapshotSchema() map[string]any {
	names := make([]string, 0, 6)
	ids := make(map[string]any, 6)
	for _, b := range upi.AllBanks() {
		names = append(names, b.String())
		ids[b.String()] = map[string]any{"type": "string"}
	}

	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []string{"mobileNumber", "creditCard", "upiIDs", "selectedBank"},
		"properties": map[string]any{
			"mobileNumber": map[string]any{
				"type":    "string",
				"pattern": "^[0-9]{10}$",
			},
			"creditCard": map[string]any{
				"type":    "string",
				"pattern": "^[0-9]{15,16}$",
			},
			"upiIDs": map[string]any{
				"type":                 "object",
				"properties":           ids,
				"required":             names,
				"additionalProperties": false,
			},
			"selectedBank": map[string]any{
				"type": "string",
				"enum": names,
			},
		},
	}
}

func mustCompile(doc map[string]any) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		panic("snapshot schema: " + err.Error())
	}
	return s
}
