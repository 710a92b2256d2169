/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package googleprovider

import (
	"chainguard.dev/refine/loop"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

// toContents converts loop history to genai contents. Messages carrying
// function calls render as model turns regardless of their (possibly
// swapped) role, and consecutive function responses coalesce into a
// single user turn. Function responses must carry the tool name, which
// genai requires but the loop correlates by call ID alone, so names are
// resolved from the call-bearing messages seen earlier in the history.
func toContents(history []loop.Message) []*genai.Content {
	callNames := make(map[string]string)
	out := make([]*genai.Content, 0, len(history))
	for i := 0; i < len(history); i++ {
		msg := history[i]
		switch {
		case msg.Role == loop.RoleToolResult:
			var parts []*genai.Part
			for ; i < len(history) && history[i].Role == loop.RoleToolResult; i++ {
				parts = append(parts, &genai.Part{
					FunctionResponse: &genai.FunctionResponse{
						ID:       history[i].ToolCallID,
						Name:     callNames[history[i].ToolCallID],
						Response: map[string]any{"output": history[i].Content},
					},
				})
			}
			i--
			out = append(out, &genai.Content{Role: "user", Parts: parts})

		case len(msg.ToolCalls) > 0:
			var parts []*genai.Part
			if msg.Content != "" {
				parts = append(parts, &genai.Part{Text: msg.Content})
			}
			for _, call := range msg.ToolCalls {
				callNames[call.ID] = call.Name
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{
						ID:   call.ID,
						Name: call.Name,
						Args: call.Args,
					},
				})
			}
			out = append(out, &genai.Content{Role: "model", Parts: parts})

		case msg.Role == loop.RoleAssistant:
			out = append(out, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: msg.Content}},
			})

		default:
			out = append(out, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		}
	}
	return out
}

// toDeclarations converts tool specs to genai function declarations.
func toDeclarations(specs []loop.ToolSpec) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(specs))
	for _, spec := range specs {
		out = append(out, &genai.FunctionDeclaration{
			Name:                 spec.Name,
			Description:          spec.Description,
			ParametersJsonSchema: spec.Schema,
		})
	}
	return out
}

// fromResponse converts a Gemini response to a loop message. Gemini does
// not always assign function call IDs, so missing IDs are synthesized to
// keep the loop's call/result correlation intact.
func fromResponse(response *genai.GenerateContentResponse) (loop.Message, error) {
	if len(response.Candidates) == 0 {
		return loop.Message{}, &loop.MalformedResponseError{Reason: "response contains no candidates"}
	}
	candidate := response.Candidates[0]
	if candidate.Content == nil {
		return loop.Message{}, &loop.MalformedResponseError{Reason: "candidate content is nil"}
	}

	reply := loop.Message{Role: loop.RoleAssistant}
	for _, part := range candidate.Content.Parts {
		switch {
		case part.Thought:
			// Thinking output is not part of the conversation.
		case part.FunctionCall != nil:
			id := part.FunctionCall.ID
			if id == "" {
				id = uuid.NewString()
			}
			args := part.FunctionCall.Args
			if args == nil {
				args = map[string]any{}
			}
			reply.ToolCalls = append(reply.ToolCalls, loop.ToolCall{
				ID:   id,
				Name: part.FunctionCall.Name,
				Args: args,
			})
		case part.Text != "":
			reply.Content += part.Text
		}
	}
	return reply, nil
}
