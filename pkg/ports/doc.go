/*
Package ports defines the driven ports (interfaces) for the dateq engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to cache search results against various storage
backends.

# Key Interfaces

  - ResultStore: Responsible for persisting and loading search Results
    (e.g., in Memory or Redis).
*/
package ports
