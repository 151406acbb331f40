// Package shape describes the type shape requested by an injection site.
//
// A Descriptor is a closed tagged variant: a scalar, a container of another
// descriptor (list, set, map, optional, supplier, array), one of the numeric
// optionals, or a structured type identified by name. Every supported shape is
// enumerable, so converters dispatch with a single exhaustive switch on Kind.
//
// The canonical identity of a descriptor is its String form:
//
//	int                   scalar
//	list<string>          ordered sequence
//	set<long>             deduplicated sequence
//	map<string,double>    object with string keys
//	optional<bool>        value or empty
//	optionalInt           numeric optional
//	supplier<int>         deferred value
//	[]int                 array of int
//	example.com/app.Point structured type
//
// Parse reads the same notation back.
package shape
