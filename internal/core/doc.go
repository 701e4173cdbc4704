// Package core provides the normalization engine for exchange exports.
//
// This package is the heart of the importer, containing all domain logic
// independent of any transport layer. It can be used by web handlers, CLI
// tools, or tests without modification.
//
// # Architecture
//
// The package is organized around a few key concepts:
//
//   - Adapters: one per export format, registered via the registry. Each
//     declares its accepted header layouts and binds a row to typed fields.
//   - Validation: pure functions over typed fields, composed by adapters.
//   - Cluster builder: expands a validated row into a primary transaction
//     plus related fee and rebate transactions.
//   - Importer: gates the header, decodes rows independently and collects
//     clusters and problems.
//   - Service: request-level wrapper with concurrency limiting and a short
//     lived result cache.
//
// # Format Registry
//
// Adapters are registered at init time using [Register]:
//
//	func init() {
//	    core.Register(okexV1{})
//	}
//
// [Detect] picks a format by header when the client does not name one.
//
// # Row Outcomes
//
// Every data row ends in exactly one state:
//
//   - Clustered: a [Cluster] was produced
//   - Ignored: the row carries a type or status the format does not import
//   - Rejected: a cell could not be read or a value failed validation
//
// A header that matches no layout is a [SchemaError] and no row is read.
// An [InternalError] aborts the import.
//
// # Error Handling
//
// Errors are mapped to user-friendly messages using [MapError]. Each category
// has a code for support reference:
//
//   - SCH001, FMT001: header and format errors
//   - IGN001-IGN002: ignored rows
//   - REJ001-REJ006: rejected rows
//   - INT001: internal consistency failure, aborts the import
//   - FILE001-FILE006: file errors (size, format, form); FILE003 is unused
//   - UPL002-UPL005: import errors (busy, expired, cancelled, timeout)
//   - RATE001, AUTH001-AUTH002: raised by the HTTP layer
package core
