// Package planner decides what happens to each discovered file before any
// work starts: where its output goes, whether it needs the HEIC pre-decode
// step, and whether it must be rejected because another input already owns
// its output path. It also computes fit-inside resize targets.
package planner
