// Package wirely is the agent execution engine behind an AI-assisted
// circuit-design editor: it turns one natural-language command into a bounded
// sequence of tool invocations against the design surface.
//
// # Overview
//
// The reasoning service streams a completion as incremental deltas. This
// package reassembles those deltas into assistant text and tool calls
// (Merger), dispatches each tool call through a typed registry that never
// lets a single tool failure abort the conversation (Registry), and
// broadcasts live progress to UI observers with explicit retention semantics
// (Notifier). Agent composes the three into the thought-action loop.
//
// Pipeline: conversation + tool schemas → completion request → stream frames
// → Merger → assistant turn → Registry.Dispatch → tool results → back into
// the conversation → next iteration, bounded by MaxIterations.
//
// # Key concepts
//
//   - Single Source of Truth: one argument struct drives both the JSON
//     Schema shown to the model and the validation of incoming arguments.
//   - Partial Failure Tolerance: a malformed stream frame is skipped, a bad
//     tool call becomes a failed ToolResult fed back to the model; only a
//     transport failure aborts an Execute call.
//   - Self-Correction: ArgumentError carries human-readable messages back to
//     the model so it can repair its own tool calls.
//
// See Message, Frame, Tool, ToolResult for the core types, and New /
// NewRegistry / NewNotifier for setup.
package wirely
