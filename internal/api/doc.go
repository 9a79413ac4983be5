// Package api is the core surface presentation layers call.
//
// Each mutating call takes an explicit Request naming the language code and,
// optionally, the game directory. Calls return an Outcome carrying a success
// flag, a human-readable message, and folder/file counters, alongside a typed
// error that classifies with services.Kind.
package api
