package cmd

const DESCRIPTION = `
Lofi Room keeps an ordered queue of focus sessions and breaks,
drives a drift-free countdown over it, and reminds you about
calendar events and alarms. Every attached window mirrors the
same state through the lofid daemon.
`

const (
	AddDescription = `The add command appends a focus session to the schedule
queue. The session becomes active when the timer reaches it.

Example:
        lofi add "Write report" -m 45

`
	PresetDescription = `The preset command appends a focus session built from a
named preset (short, standard or deep).

Example:
        lofi preset deep

`
	BreakDescription = `The break command appends a break to the schedule queue,
optionally spliced right after an existing item.

Example:
        lofi break -m 10

`
	QueueDescription = `The queue command displays the schedule queue along with
aggregate focus statistics. Item ids shown here are accepted
by the remove command.

Example:
        lofi queue

`
	RemoveDescription = `The remove command deletes a queue item by its id. Removing
the active item resets the countdown.

Example:
        lofi remove <item id>

`
	ClearDescription = `The clear command drops completed and skipped items from the
queue. With --all it empties the queue entirely and resets
the timer.

Example:
        lofi clear --all

`
	StatusDescription = `The status command prints the current countdown state, the
active session and the next one in line.

Example:
        lofi status

`
	ExtendDescription = `The extend command pushes the running countdown's deadline
out by the given number of minutes.

Example:
        lofi extend -m 5

`
	WatchDescription = `The watch command attaches to the daemon as a live window:
it renders the countdown as a progress bar and follows every
queue change pushed by the daemon until interrupted.

Example:
        lofi watch

`
	EventDescription = `The event command manages calendar events and their reminder
settings. Reminders fire once per event, a configurable number
of minutes before it starts.

Example:
        lofi event add "Standup" --start 2026-09-01T09:30 --end 2026-09-01T09:45

`
	AlarmDescription = `The alarm command manages wall-clock alarms. An alarm fires
at its HH:MM time on the selected weekdays, or every day when
no days are given.

Example:
        lofi alarm add 07:30 --days mon,tue,wed,thu,fri

`
)
