// Package profile analyses the pitch of a whole signal block by block.
//
// A [Profile] is created empty by [New], populated exactly once by
// [Profile.Analyse] and afterwards only read. Consecutive blocks share
// overlap samples, so block i starts at i·(blockSize−overlap). The last block
// is zero-padded to full length.
//
// Blocks are independent, so Analyse can run the detector on several blocks
// concurrently ([WithWorkers]). Estimates are stored by block index, so the
// result does not depend on completion order.
package profile
