// Package metrics exposes the running process's own counters (uptime and
// memory usage) behind the Provider interface.
//
// Handlers depend on Provider rather than on the runtime package directly so
// tests can substitute fixed values:
//
//	provider := metrics.NewRuntimeProvider()
//	uptime := provider.Uptime()      // seconds since process start
//	mem := provider.Memory()         // MemoryUsage snapshot
package metrics
