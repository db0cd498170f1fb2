// Package dispatcher routes actions to handlers and coordinates execution.
//
// Actions are routed in two tiers. Namespace handlers own every action
// sharing a prefix ("paredit.slurpForward" goes to the "paredit" handler);
// exact registrations cover one-off names and are sorted by priority.
//
// When an action is dispatched:
//
//  1. Pre-dispatch hooks run and may cancel or rewrite the action
//  2. An ExecutionContext is built from the engine and structural editor
//  3. The handler runs, with panic recovery when configured
//  4. Post-dispatch hooks observe the result
//  5. Metrics are recorded when enabled
//
// Handlers never return Go errors directly; failures surface as a Result
// with StatusError, and lookups that find no structure surface as
// StatusNoOp so a key press on malformed input is harmless.
package dispatcher
