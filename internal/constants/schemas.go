package constants

import "tuneful/internal/schema"

// SongSchema validates POST /api/songs bodies. The referenced file is given
// either by id or, to create-or-reference it, by name.
var SongSchema = &schema.Schema{
	Type:     schema.TypeObject,
	Required: []string{"file"},
	Properties: map[string]*schema.Schema{
		"file": {
			Type: schema.TypeObject,
			Properties: map[string]*schema.Schema{
				"id":   {Type: schema.TypeInteger},
				"name": {Type: schema.TypeString, MinLength: 1},
			},
			AnyOf: []*schema.Schema{
				{Required: []string{"id"}},
				{Required: []string{"name"}},
			},
		},
	},
}
