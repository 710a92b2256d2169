/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package loop implements the draft/critique refinement state machine.
//
// A run alternates between two completion providers: a generator that
// produces or revises a draft, and a reflector that critiques it. The
// reflector sees the conversation through a role-swapped view so that the
// generator's output reads as an externally authored document, and its
// critique is persisted as a requester message so the next generator turn
// treats it as fresh instruction. Either side may request tool calls,
// which a dispatch step resolves before control returns to the step that
// asked for them.
//
// All conversation data flows through State, an append-only message log
// with routing metadata. Router is the entire transition table; Runner is
// the driving loop that asks Router for the next step, executes it, and
// stops on a terminal decision. The run ends when the critique carries an
// explicit completion marker, or when the iteration cap is reached.
//
// Execution is single-threaded and turn-based: exactly one step runs at a
// time, and the only suspension points are the calls into the completion
// provider and tool executor collaborators.
package loop
