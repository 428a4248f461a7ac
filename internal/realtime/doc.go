// Package realtime implements the in-memory push core: a registry of open
// event streams and a dispatcher that fans out broadcast events to them.
//
// One goroutine per connection runs the heartbeat loop; the dispatcher writes
// directly to each stream's sink under a per-connection mutex. Write failures
// tear down the affected connection without surfacing to the broadcasting caller.
package realtime
