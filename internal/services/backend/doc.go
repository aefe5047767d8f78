// Package backend implements the translation endpoint client: one synchronous
// chat-completion POST per text unit, sentinel-corruption retries, and a
// glossary-bearing system prompt fixed for the client's lifetime.
package backend
