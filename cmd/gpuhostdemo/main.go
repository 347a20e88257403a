// Command gpuhostdemo drives gpuhost over the noop HAL backend: it submits
// fenced batches, waits on them and exercises the shared sampler cache.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/gpuhost"
	"github.com/gogpu/gpuhost/command"
	"github.com/gogpu/gpuhost/resource"
)

func main() {
	var (
		frames  = flag.Int("frames", 4, "number of fenced submits")
		batch   = flag.Int("batch", 3, "submissions per submit")
		workers = flag.Int("workers", 8, "goroutines requesting samplers")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	open, err := openNoop()
	if err != nil {
		log.Fatalf("open device: %v", err)
	}
	defer open.Device.Destroy()

	h, err := gpuhost.New(open,
		gpuhost.WithLogger(logger),
		gpuhost.WithCapability(command.CapabilityGraphics|command.CapabilityTransfer),
	)
	if err != nil {
		log.Fatalf("create host: %v", err)
	}

	if err := runFrames(h, *frames, *batch); err != nil {
		log.Fatalf("frames: %v", err)
	}
	if err := runSamplers(h, *workers); err != nil {
		log.Fatalf("samplers: %v", err)
	}

	st := h.Samplers().Stats()
	fmt.Printf("submits: %d, samplers: %d, hits: %d, misses: %d, replaced: %d\n",
		h.Queue().NextEpoch(), st.Len, st.Hits, st.Misses, st.Replaced)

	if err := h.Close(); err != nil {
		log.Fatalf("close: %v", err)
	}
}

func openNoop() (hal.OpenDevice, error) {
	adapter := &noop.Adapter{}
	return adapter.Open(0, gputypes.DefaultLimits())
}

func runFrames(h *gpuhost.Host, frames, batch int) error {
	enc := &noop.CommandEncoder{}
	fence := h.NewFence()

	for i := 0; i < frames; i++ {
		subs := make([]command.Submission, batch)
		for j := range subs {
			if err := enc.BeginEncoding(fmt.Sprintf("frame %d/%d", i, j)); err != nil {
				return err
			}
			cb, err := enc.EndEncoding()
			if err != nil {
				return err
			}
			subs[j] = command.Submission{
				Submits: []command.Submittable{command.NewSubmit(h.Family().ID(), cb)},
			}
		}

		if err := h.Queue().Submit(subs, fence); err != nil {
			return err
		}
		ok, err := h.WaitFence(fence, time.Second)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("frame %d: fence timed out", i)
		}
		epoch, _ := fence.Epoch()
		gpuhost.Logger().Info("frame complete", "frame", i, "queue", epoch.Queue.String(), "epoch", epoch.Epoch)
		if err := h.ResetFence(fence); err != nil {
			return err
		}
	}
	return nil
}

func runSamplers(h *gpuhost.Host, workers int) error {
	infos := []resource.SamplerInfo{
		resource.DefaultSamplerInfo(),
		resource.LinearSamplerInfo(),
		resource.SamplerInfoFrom(gputypes.SamplerDescriptor{
			AddressModeU: gputypes.AddressModeClampToEdge,
			AddressModeV: gputypes.AddressModeClampToEdge,
			AddressModeW: gputypes.AddressModeClampToEdge,
			MagFilter:    gputypes.FilterModeLinear,
			MinFilter:    gputypes.FilterModeNearest,
			Compare:      gputypes.CompareFunctionLess,
		}),
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := h.Sampler(infos[i%len(infos)])
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			s.Release()
		}(i)
	}
	wg.Wait()
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
