// Package light implements the coordination core of a blockchain light
// client: a Supervisor that verifies headers against a primary peer,
// cross-checks the result against witnesses to detect forks, reports
// evidence of misbehavior, and exposes all of this to other goroutines
// through a thread-safe Handle.
//
// Header verification, fork detection, and evidence transport are
// delegated to collaborators (LightClient, ForkDetector,
// EvidenceReporter); this package only orchestrates them.
package light
