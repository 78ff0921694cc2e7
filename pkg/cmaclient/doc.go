// Package cmaclient provides the primary entry point for constructing a
// management API client that implements the cma.Client interface.
//
// It layers configuration, HTTP transport, authentication, and the schema
// cache on top of the resource interfaces and types defined in the cma
// package. Most applications should import cmaclient to build a client, then
// use the returned cma.Client to access resource-specific clients, for
// example Entries(), ContentTypes(), Assets().
//
// Quick start
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
//
//	  // With an access token you already have:
//	  cli, err := cmaclient.NewWithToken(ctx, "https://api.example.com", "token")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a full configuration:
//	  cli, err = cmaclient.New(ctx, &cma.Config{
//	    Endpoint:    "https://api.example.com",
//	    AccessToken: "token",
//	    RetryMax:    3,
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  entry, err := cli.Entries().Get(ctx, "space-id", "entry-id")
//	  if err != nil { log.Fatal(err) }
//	  _ = entry
//	}
//
// # Schema caching
//
// Content type schemas are fetched lazily and cached for the lifetime of the
// client. The backend is configurable through Config.Cache: in-process memory
// (the default), NATS JetStream KV for sharing across processes, or none.
package cmaclient
