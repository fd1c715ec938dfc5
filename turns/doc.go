// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package turns implements the turn advancement engine and reminder scheduler.

# Turn Advancement

A session holds a circular participant list and two counters: active_index
(whose turn it is) and tracks_this_turn (tracks played so far this turn).
The engine applies one transition per call:

	result, err := engine.AdvanceOrContinue(ctx, sessionID, force)

With force=false (a track finished), the counter advances; when the
holder's quota (tracks_per_turn) is spent the turn passes to the next
participant and the outgoing holder is credited one track. With force=true
(a hand-over), the turn passes immediately regardless of the counter.

Outcomes:

	OutcomeAdvanced    - turn passed to the next participant
	OutcomeContinued   - same holder, counter advanced
	OutcomeNothingToDo - unknown session or no participants (benign no-op)

# Concurrency

Transitions are applied with a compare-and-swap against the counters read
at the start of the attempt. On a lost race the engine re-reads and retries
a bounded number of times, then returns ErrTurnConflict. The track credit
is applied only after a swap lands, so each played track is credited
exactly once.

# Reminder Scheduling

The scheduler arms a delayed "Still mixing?" push for the current holder:

	result, err := scheduler.ArmReminder(ctx, sessionID, minutes)

minutes <= 0 uses the configured default (8). The notification carries two
action buttons whose URLs call back into the turn entry points, so a tap
on "Hand over" forces the transition and a tap on "Still mixing" re-arms
the reminder. Sessions without a registered player ID for the holder are
skipped with OutcomeNoPlayerID rather than treated as errors.

After every successful transition the engine re-arms a reminder for the
incoming holder in the background; arming failures are logged, never
propagated to the caller who completed the track.
*/
package turns
