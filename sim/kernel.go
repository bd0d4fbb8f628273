package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// queuedEvent pairs an event with its admission sequence number so that
// same-step events dispatch in posting order regardless of heap shape.
type queuedEvent struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp,
// breaking ties by admission order for deterministic dispatch.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []queuedEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	if eq[i].ev.Timestamp() != eq[j].ev.Timestamp() {
		return eq[i].ev.Timestamp() < eq[j].ev.Timestamp()
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// Device is a simulated component driven by the kernel in contiguous step
// blocks. Update is invoked for the block [from, to) relative to origin;
// successive calls never overlap and leave no gaps.
type Device interface {
	ID() string
	PreRun(k *Kernel)
	Update(k *Kernel, origin, from, to int64)
}

// KernelConfig groups the kernel construction parameters.
type KernelConfig struct {
	ResolutionMs float64 // step duration in ms (must be > 0)
	Seed         int64   // master seed for all randomness
	BlockSteps   int64   // steps per update block (default 10)
}

// Kernel owns the global clock, the step grid, the partitioned random
// streams and the delivery queue, and drives registered devices through
// successive step blocks. One kernel, one goroutine: devices and their
// state are owned by the kernel for their entire lifetime.
type Kernel struct {
	grid       Grid
	clock      int64 // current step; time already simulated is [0, clock)
	rng        *PartitionedRNG
	queue      EventQueue
	nextSeq    uint64
	devices    []Device
	blockSteps int64
}

// NewKernel creates a kernel from cfg.
func NewKernel(cfg KernelConfig) (*Kernel, error) {
	grid, err := NewGrid(cfg.ResolutionMs)
	if err != nil {
		return nil, err
	}
	blockSteps := cfg.BlockSteps
	if blockSteps == 0 {
		blockSteps = 10
	}
	if blockSteps < 0 {
		return nil, fmt.Errorf("block steps must be positive, got %d", blockSteps)
	}
	return &Kernel{
		grid:       grid,
		rng:        NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
		queue:      make(EventQueue, 0),
		blockSteps: blockSteps,
	}, nil
}

// Grid returns the kernel's step grid.
func (k *Kernel) Grid() Grid {
	return k.grid
}

// NowStep returns the current simulation time in steps.
func (k *Kernel) NowStep() int64 {
	return k.clock
}

// NowMs returns the current simulation time in ms.
func (k *Kernel) NowMs() float64 {
	return k.grid.Ms(k.clock)
}

// RNG returns the kernel's partitioned random streams.
func (k *Kernel) RNG() *PartitionedRNG {
	return k.rng
}

// Register adds a device to the kernel's drive list.
func (k *Kernel) Register(d Device) {
	k.devices = append(k.devices, d)
}

// Post enqueues an event for delivery. Events are dispatched at the end of
// the block containing their timestamp.
func (k *Kernel) Post(ev Event) {
	k.nextSeq++
	heap.Push(&k.queue, queuedEvent{ev: ev, seq: k.nextSeq})
}

// PendingEvents returns the number of undelivered events.
func (k *Kernel) PendingEvents() int {
	return len(k.queue)
}

// Run advances the simulation by horizonSteps steps, driving every device
// through contiguous blocks and dispatching the delivery queue after each
// block. May be called repeatedly; the clock carries over.
func (k *Kernel) Run(horizonSteps int64) {
	if horizonSteps <= 0 {
		return
	}
	for _, d := range k.devices {
		d.PreRun(k)
	}

	end := k.clock + horizonSteps
	for k.clock < end {
		blockEnd := k.clock + k.blockSteps
		if blockEnd > end {
			blockEnd = end
		}
		for _, d := range k.devices {
			d.Update(k, k.clock, 0, blockEnd-k.clock)
		}
		k.deliverUntil(blockEnd)
		k.clock = blockEnd
		logrus.Debugf("[step %07d] block complete, %d events pending", k.clock, len(k.queue))
	}
	logrus.Infof("[step %07d] simulation ended at %.3f ms", k.clock, k.NowMs())
}

// deliverUntil dispatches every queued event with timestamp < until.
func (k *Kernel) deliverUntil(until int64) {
	for len(k.queue) > 0 && k.queue[0].ev.Timestamp() < until {
		qe := heap.Pop(&k.queue).(queuedEvent)
		qe.ev.Execute(k)
	}
}
