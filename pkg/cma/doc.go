// Package cma provides types, interfaces, and helpers for working with a
// hosted content platform's management API.
//
// # Overview
//
// The cma package defines the domain types (Entry, Asset, ContentTypeSchema,
// Space) and the interfaces for resource-oriented clients (EntriesClient,
// ContentTypesClient, AssetsClient, SpacesClient). A concrete implementation
// is provided by the cmaclient package, which wires configuration, transport,
// and the schema cache. Most consumers should import cmaclient to construct a
// client and then interact with the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/contentforge-io/cma-client/pkg/cma"
//	  "github.com/contentforge-io/cma-client/pkg/cmaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := cmaclient.NewWithToken(ctx, "https://api.example.com", "token")
//	  if err != nil { log.Fatal(err) }
//
//	  entry, err := cli.Entries().Get(ctx, "space-id", "entry-id")
//	  if err != nil { log.Fatal(err) }
//	  _ = entry
//	}
//
// # The field model
//
// Entry field data is locale-partitioned: a FieldStore maps locale codes to
// field-name/value tables, and FieldValue is a tagged union over the closed
// set of wire-representable kinds (scalars, links, geographic points, lists).
// EncodeField and ComputeUpdatePayload translate between domain values and
// the wire's link and coordinate objects; updates are depth-2 merges that
// never clobber sibling locales or untouched fields.
//
// Field schemas are declared by content types, fetched lazily through a
// session-scoped SchemaCache, and drive both attribute filtering on create
// and the dynamic accessor tables entries expose through Field/SetField.
//
// # Errors
//
// Remote failures are represented by APIError, an error resource with a sys
// discriminator block. Helpers such as IsNotFound, IsVersionConflict, and
// IsValidationFailed make it easy to branch on common cases. Version
// conflicts indicate another writer and are never retried by the client.
package cma
