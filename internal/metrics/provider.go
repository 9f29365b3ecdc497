package metrics

import (
	"runtime"
	"time"
)

// processStart approximates the moment the process started.
var processStart = time.Now()

// MemoryUsage is a snapshot of the process memory counters in bytes.
// Key names follow the shape clients of the status endpoint already parse.
type MemoryUsage struct {
	RSS        uint64 `json:"rss"`
	HeapTotal  uint64 `json:"heapTotal"`
	HeapUsed   uint64 `json:"heapUsed"`
	External   uint64 `json:"external"`
	Goroutines int    `json:"goroutines"`
	NumGC      uint32 `json:"numGC"`
}

// Provider reports process-level runtime figures.
type Provider interface {
	// Uptime returns seconds elapsed since the process started.
	Uptime() float64
	Memory() MemoryUsage
}

type RuntimeProvider struct {
	startTime time.Time
	now       func() time.Time
}

// NewRuntimeProvider returns a Provider backed by the Go runtime.
func NewRuntimeProvider() *RuntimeProvider {
	return &RuntimeProvider{
		startTime: processStart,
		now:       time.Now,
	}
}

func (p *RuntimeProvider) Uptime() float64 {
	return p.now().Sub(p.startTime).Seconds()
}

func (p *RuntimeProvider) Memory() MemoryUsage {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return MemoryUsage{
		RSS:        ms.Sys,
		HeapTotal:  ms.HeapSys,
		HeapUsed:   ms.HeapAlloc,
		External:   ms.StackSys + ms.MSpanSys + ms.MCacheSys + ms.BuckHashSys + ms.GCSys + ms.OtherSys,
		Goroutines: runtime.NumGoroutine(),
		NumGC:      ms.NumGC,
	}
}
