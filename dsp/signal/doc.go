// Package signal builds simple deterministic impulse responses for tests,
// examples and the CLI demo: impulses, constants and exponentially decaying
// responses.
package signal
