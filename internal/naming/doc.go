// Package naming derives output paths from input filenames and tracks which
// input owns each output path within a run.
//
// Output names are a pure function of the input base name and the target
// extension, so re-running a tool overwrites the previous outputs. Two inputs
// that differ only by extension (e.g. "intro.mov" and "intro.mp4") map to the
// same output; [Claims] lets the planner detect that before any job runs.
package naming
