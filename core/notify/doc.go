// Package notify delivers the run report out-of-band by email.
//
// It sits at the edge of the system: the reporter hands it a subject and a
// body, and whatever happens here never changes the run's outcome.
package notify
