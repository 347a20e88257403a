// Package gpuhost coordinates command submission and shared sampler
// objects on top of a gogpu HAL device.
//
// # Overview
//
// gpuhost is the host-side layer between recorded command buffers and the
// device queue. It batches submissions, attaches fences so that a fence
// signals only after every batch of a submit call has completed, tags each
// fenced submit with a per-queue epoch, and deduplicates immutable samplers
// through a reference-counted cache.
//
// # Quick Start
//
//	open, _ := adapter.Open(0, gputypes.DefaultLimits())
//	h, err := gpuhost.New(open)
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//
//	fence := h.NewFence()
//	subs := []command.Submission{{
//	    Submits: []command.Submittable{command.NewSubmit(h.Family().ID(), cmdBuf)},
//	}}
//	if err := h.Queue().Submit(subs, fence); err != nil {
//	    return err
//	}
//	ok, err := h.WaitFence(fence, time.Second)
//
//	sampler, err := h.Sampler(resource.LinearSamplerInfo())
//	defer sampler.Release()
//
// # Architecture
//
// The module is organized into:
//   - command: queues, families, submissions, fences and epochs
//   - resource: shared handles and the sampler cache with its upgradable lock
//   - backend/native: the HAL device bridge (submit, fence polling, samplers)
//   - gpuhost: assembly of the above into a Host
//
// # Logging
//
// gpuhost is silent by default. SetLogger installs a log/slog logger for
// this package and every sub-package.
package gpuhost
