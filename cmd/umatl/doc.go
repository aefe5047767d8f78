// Command umatl drives the incremental translation pipeline: extracting raw
// story JSON, translating documents and the character table against a local
// chat-completion backend, and bundling each run's outputs into update
// archives.
package main
