/*
Package ports defines the interfaces between the transposition core and the outside world.

Following Hexagonal Architecture, the core (pkg/domain, pkg/runner) depends only on
these interfaces. Adapters implement them:

  - Source: loads an analysis document (file, memory).
  - DestinationEnumerator: lists the keys to transpose into (output folders, static list).
  - Sink: persists transposed text (file, memory, Redis).
*/
package ports
