// Package producer answers configuration requests.
//
// For each site.Site the Producer derives the key and default text, loads the
// named document from config.Store, substitutes the parsed default when the key
// is absent, and converts the node with convert.Converter.
//
//	store := config.NewStore(file.NewBackend("/etc/app"))
//	p := producer.New(store, convert.New())
//	port, err := producer.Typed[int32](p, site.Site{
//	    Qualifier: site.NewQualifier("values").WithProperty("app.port").WithDefault("8080"),
//	    Type:      shape.ScalarOf(shape.Int),
//	})
//
// Errors wrap ErrUnresolvableSite, ErrMalformedDefault or the convert package
// sentinels, and name the document, key and default text involved.
package producer
