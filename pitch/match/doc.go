// Package match re-pitches a recording so that it follows the pitch line of
// another one, or an in-tune version of its own.
//
// Both profiles are compressed into stable sections, short sections are
// merged away and the two section lists are walked as a merge of interval
// partitions. Every interval where one original section overlaps one target
// section becomes a [Segment] shifted by the ratio of their pitches.
//
// [Correct] matches a profile against a copy of itself whose estimates were
// snapped to the nearest (allowed) semitone.
package match
