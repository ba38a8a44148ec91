package core_test

import (
	"sync"
	"testing"

	"github.com/cytoscape/cyweb/internal/config"
	"github.com/cytoscape/cyweb/internal/core"
)

// Request handlers read the configuration while a file reload swaps it from
// another goroutine; the accessors must stay safe under the race detector.
func TestConfigSwapSafeForConcurrentReaders(t *testing.T) {
	app := &core.App{}
	cfg := &config.Config{}
	cfg.Upload.MaxMB = 32
	app.SetConfig(cfg)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if app.Config().Upload.MaxMB <= 0 {
				t.Error("Reader observed an uninitialized config")
				return
			}
		}
	}()

	for i := int64(1); i <= 1000; i++ {
		fresh := &config.Config{}
		fresh.Upload.MaxMB = i
		app.SetConfig(fresh)
	}
	close(stop)
	wg.Wait()

	if app.Config().Upload.MaxMB != 1000 {
		t.Errorf("Expected final upload limit 1000, got %d", app.Config().Upload.MaxMB)
	}
}
