// Package inject wires typed configuration values into an Fx application.
//
// Request sites are declared as tagged struct fields or as explicit site.Site values.
// At start-up the catalog decides which requested shapes need a synthesized provider;
// each becomes a Creator tagged ConfigTag. Target structs are provided populated:
//
//	type Server struct {
//		Host    string        `config:""`                     // values document, key Server.Host
//		Port    int32         `config:"http.port" default:"8080"`
//		Timeout time.Duration `config:"http.timeout" default:"30s"`
//	}
//
//	app := inject.NewApp(
//		inject.WithConfigDir("/etc/app"),
//		inject.WithTargets(Server{}),
//		inject.WithModules(fx.Module("http", fx.Invoke(func(s *Server) { ... }))),
//	)
//
// Documents are read once per name and cached for the life of the process.
package inject
