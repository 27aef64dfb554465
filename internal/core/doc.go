// Package core provides the record synchronisation logic for sheet-backed
// registries.
//
// This package holds all domain logic independent of any UI or transport
// layer. It can be used by web handlers, CLI tools, or tests without
// modification.
//
// # Architecture
//
//   - Collection Definitions: Registered via the registry, each collection has
//     its column order, key field and optional link to a child collection.
//   - Service: The main entry point for listing, updating, creating and
//     deleting records.
//   - Plans: Multi-step mutations run as an ordered list of steps with an
//     explicit state per step.
//   - Audit: Every plan is recorded with its per-step outcome.
//
// # Collection Registry
//
// Collections are registered at init time using [Register]:
//
//	core.Register(core.CollectionDefinition{
//	    Info:      core.CollectionInfo{Key: "customers", Group: "Customers"},
//	    Columns:   []string{"Customer ID", "Customer Name", "Item ID's"},
//	    KeyField:  "Customer ID",
//	    LinkField: "Item ID's",
//	    ChildKey:  "items",
//	})
//
// # Row Handles
//
// A record's handle is its 1-based position among the data rows of the read
// that produced it. Handles shift whenever a row above them is deleted, so
// every mutation re-reads the collection and checks the handle with
// [sheet.Snapshot.Verify] right before writing. A handle that no longer
// addresses the same row fails with *sheet.StaleHandleError.
//
// # Relationships
//
// A customer row stores the identifiers of its items as a comma-joined list
// ([LinkList]); each item row stores its customer's identifier. Creating a
// customer writes the customer row and then each item row. Deleting a
// customer deletes each listed item, looked up by identifier in a fresh read,
// and then the customer. Items missing from the sheet are skipped.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Every mutation returns exactly one [Notice] for the user.
package core
