// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services depend only on domain types and port interfaces; the GitHub
// connector and the stores are injected by the caller.
package services
