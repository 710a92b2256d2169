/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package loop_test

import (
	"testing"

	"chainguard.dev/refine/loop"
)

func TestParseCompletion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{{
		name: "bare marker",
		text: "REPORT STATUS: COMPLETE",
		want: true,
	}, {
		name: "marker at end of critique",
		text: "The report covers all requested sections with citations.\n\nREPORT STATUS: COMPLETE",
		want: true,
	}, {
		name: "different status value",
		text: "The report is mostly complete, but needs more citations. REPORT STATUS: NEEDS REVISION",
		want: false,
	}, {
		name: "no marker at all",
		text: "Good start. Expand the second section and add sources.",
		want: false,
	}, {
		name: "empty text",
		text: "",
		want: false,
	}, {
		name: "hedge after marker",
		text: "REPORT STATUS: COMPLETE. However, the conclusion feels rushed.",
		want: false,
	}, {
		name: "hedge phrase needs revision after marker",
		text: "STATUS: COMPLETE — though section 2 needs revision.",
		want: false,
	}, {
		name: "hedge could be improved after marker",
		text: "STATUS: COMPLETE. The prose could be improved.",
		want: false,
	}, {
		name: "hedge before marker does not veto",
		text: "Earlier drafts were weak, however this one lands. REPORT STATUS: COMPLETE",
		want: true,
	}, {
		name: "hedge case-insensitive",
		text: "STATUS: COMPLETE BUT unverified.",
		want: false,
	}, {
		name: "lowercase marker does not count",
		text: "report status: complete",
		want: false,
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := loop.ParseCompletion(tc.text); got != tc.want {
				t.Fatalf("ParseCompletion(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
