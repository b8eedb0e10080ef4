// Package scheduler provides deferred notification delivery for lofid.
// It implements a single-goroutine scheduler using a min-heap of entries
// sorted by fire time, with a 60-second max-sleep-cap to handle NTP steps,
// DST transitions, and system sleep (macOS monotonic clock pause).
//
// The scheduler is a daemon-level component: snoozed reminders are pushed
// onto the heap and re-fired through a registered callback when their time
// arrives. It does not persist state, so pending snoozes are lost on daemon
// restart, which matches how desktop notification snoozing behaves.
package scheduler
