// Package section compresses per-block pitch entries into stable sections.
//
// A section is a run of entries whose pitch stays close to the running
// median of the section, either directly or one octave away. A short run of
// deviating entries is absorbed; a run of Config.DeviationRun deviating
// entries starts a new section where the deviation began. Sections partition
// the same range as their input.
package section
