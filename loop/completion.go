/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package loop

import "strings"

// completionMarker is the literal token a critique must contain to declare
// the draft complete. Matched case-sensitively.
const completionMarker = "STATUS: COMPLETE"

// hedgePhrases veto a completion marker when any of them appears after it.
// A critique that says "complete, but..." is not a completion. Matched
// case-insensitively as plain substrings.
var hedgePhrases = []string{
	"but",
	"however",
	"needs revision",
	"could be improved",
}

// ParseCompletion classifies critique text as a completion signal. It is a
// pure function of the text: the marker must be present, and no hedge
// phrase may occur after the first marker occurrence. Text without a
// marker is never a completion.
//
// This is a heuristic over free text rather than a structured field, kept
// for compatibility with existing critique prompts; unexpectedly worded
// provider output can misclassify.
func ParseCompletion(text string) bool {
	idx := strings.Index(text, completionMarker)
	if idx < 0 {
		return false
	}
	tail := strings.ToLower(text[idx+len(completionMarker):])
	for _, hedge := range hedgePhrases {
		if strings.Contains(tail, hedge) {
			return false
		}
	}
	return true
}
