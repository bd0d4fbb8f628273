package sim

import (
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemKernel is the RNG subsystem reserved for the kernel itself.
	SubsystemKernel = "kernel"
)

// SubsystemGenerator returns the subsystem name for the named generator.
// Each generator draws from its own stream, so adding or removing one
// device never perturbs the spike trains of the others.
func SubsystemGenerator(id string) string {
	return "generator_" + id
}

// === Stream ===

// Stream couples a seeded source with a Rand drawing from it. Handing the
// bare source to distribution samplers (gonum distuv) keeps their draws on
// the same sequence as plain Rand calls.
type Stream struct {
	src *rand.PCG
	rnd *rand.Rand
}

// Rand returns the stream's Rand for uniform draws.
func (s *Stream) Rand() *rand.Rand {
	return s.rnd
}

// Source returns the underlying seeded source.
func (s *Stream) Source() rand.Source {
	return s.src
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated random streams per
// subsystem.
//
// Derivation formula: pcgSeed = masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine;
// stream ownership is the concurrency model, not locking.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*Stream
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]*Stream),
	}
}

// ForSubsystem returns a deterministically-seeded stream for the named
// subsystem. The same subsystem name always returns the same *Stream
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *Stream {
	if s, ok := p.streams[name]; ok {
		return s
	}

	seed := uint64(p.key) ^ fnv1a64(name)
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	s := &Stream{src: src, rnd: rand.New(src)}
	p.streams[name] = s
	return s
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
