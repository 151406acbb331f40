// Package site models configuration request sites and derives their lookup keys.
//
// A Site pairs a Qualifier (document name, explicit property, default text) with
// the declaring type, the member name and the requested shape. ResolveKey and
// ResolveDefault are pure functions of a Site.
//
// Scan discovers sites on struct fields:
//
//	type Server struct {
//	    Port    int           `config:""`                      // values: Server.Port
//	    Host    string        `config:"server.host" default:"localhost"`
//	    Timeout time.Duration `config:"timeout" document:"db" default:"5s"`
//	    Tags    map[string]struct{} `config:"server.tags"`     // set<string>
//	}
package site
