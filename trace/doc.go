// Package trace is the side channel through which allocation algorithms
// report their decisions.
//
// Algorithms emit Events (level, message template, structured fields) to a
// *Tracer; listeners attached to that tracer receive the ones at or above
// their minimum level. Nothing here decides how events are shown: a
// listener may print, record, or forward to a logr.Logger (LogrListener).
//
// Guarantees:
//   - Emission never changes an algorithm's result. A run with no
//     listeners and a run with listeners produce identical allocations.
//   - Attach returns a detach func; Scope attaches for the duration of one
//     call and always detaches, even if the call fails or panics.
//   - Tracers are independent: listeners on one tracer never see another
//     tracer's events, so concurrent runs can each own a tracer.
//   - A nil *Tracer is a valid sink that drops everything.
//
// Levels:
//
//	LevelDebug   — the items still on the table at each turn or round.
//	LevelInfo    — one event per turn or per matching round.
//	LevelWarning — unusual outcomes, e.g. items left unassigned.
//
// Listeners default to LevelWarning, so INFO traffic is suppressed unless a
// caller asks for it.
package trace
