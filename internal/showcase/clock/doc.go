// Package clock schedules deferred callbacks behind an interface so view
// choreography can run against wall time in production and a manually
// advanced clock in tests.
package clock
