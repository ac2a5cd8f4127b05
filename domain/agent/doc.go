// Package agent provides the core domain model for safety-layered agents.
//
// An agent holds an internal model of its environment and goals, and on
// every decision either commits to an action or requests an updated
// model. A Base agent trusts its model completely and always acts. Each
// safety layer wrapped around it probes the stability of the base
// decision under bounded hypothetical mutations of the model before
// committing: a decision that survives a mutation is committed, a
// decision that flips under a mutation escalates to a model request.
//
// Layers are indexed structurally, in the Peano style: a Layered agent
// is either the zero case wrapping a Base directly, or a Successor
// wrapping a Layered agent one level shallower. The nesting depth is
// the safety-layer count. A single model instance lives at the bottom
// of every stack; layers never copy it, they reach it through the
// delegation chain.
//
// The package is deliberately free of I/O, persistence, and
// concurrency. One logical thread of control must own a stack for its
// lifetime: a probe briefly mutates the shared model and restores it
// before anything else observes it.
package agent
