// Package catalog decides which request sites need a synthesized provider.
//
// Scalars, optionals, lists, sets, maps, suppliers and the well-known time types are
// served by built-in producers. Every other requested shape, chiefly arrays and custom
// structured types, collapses into one Registration per canonical type identity:
//
//	registrations, err := catalog.Build(sites, types)
//	if err != nil {
//		return err
//	}
//
//	for _, registration := range registrations {
//		// hand registration to the container
//	}
//
// Build runs once before any value is resolved and its output does not change afterwards.
package catalog
