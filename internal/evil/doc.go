// Package evil composes operator-pending commands from discrete input events.
//
// A command is an operator (yank, delete, change) followed by a motion, with
// an optional count typed after the operator, scope modifiers such as
// "inner", and an optional mode switch applied once the command ran:
//
//	d 3 }      delete three paragraphs forward
//	c i w      change inner word (the word motion needs a modifier)
//	y {        yank up to the previous paragraph
//
// # States
//
// The accumulator is a sealed set of variants so that partial input which
// makes no sense, such as a modifier without an operator, cannot be built:
//
//	Idle ──operator──> AwaitingMotion ──motion──> ready
//	                        │                      ▲
//	                        └─motion needs scope─> AwaitingModifier
//
// Reaching ready is not a state: Feed returns the completed Command and the
// machine is back to Idle. Cancel returns to Idle from anywhere.
//
// # Dispatch
//
// Dispatcher runs a completed command against the session's collaborators:
// it computes the motion target for every range of the selection, applies
// the operator to the span between the range and its target, and finally
// applies the requested mode switch.
package evil
