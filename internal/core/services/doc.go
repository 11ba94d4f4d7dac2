// Package services implements the driving port interfaces.
// Services contain the core logic and orchestrate calls to driven ports
// (adapters): fetching and storing events, formatting them for display,
// resolving settings and running scheduled refreshes.
package services
