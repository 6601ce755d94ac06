// Package pipeline implements the three-stage reader / hasher-pool / writer
// pipeline shared by the checksum and retrieve subcommands (§4.3, §4.4, §5):
// a single sequential reader, a bounded pool of parallel hashers, and a
// single sequential writer, wired so that the writer always emits results in
// reader order regardless of which hasher finished which batch first.
package pipeline

// BlockSize is the default fixed block size: 128 KiB.
const BlockSize = 128 * 1024

// MaxBatchBlocks is the largest number of consecutive blocks the reader
// groups into one batch before handing it to a hasher.
const MaxBatchBlocks = 16

// MaxHashers bounds the hasher pool regardless of how many CPUs are
// detected.
const MaxHashers = 8

// QueueFactor sizes both bounded queues as QueueFactor * hasher count,
// bounding peak memory to roughly QueueFactor*N*MaxBatchBlocks*BlockSize per
// process.
const QueueFactor = 3
