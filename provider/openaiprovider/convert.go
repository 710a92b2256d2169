/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaiprovider

import (
	"encoding/json"
	"fmt"

	"chainguard.dev/refine/loop"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
)

// toChatMessages converts loop history to chat completion messages. The
// API only accepts tool invocations on the assistant side, so messages
// carrying tool calls render as assistant turns regardless of their
// (possibly swapped) role. Tool results map to per-call tool messages.
func toChatMessages(history []loop.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		switch {
		case msg.Role == loop.RoleToolResult:
			out = append(out, openai.ToolMessage(msg.Content, msg.ToolCallID))

		case len(msg.ToolCalls) > 0:
			assistant := openai.ChatCompletionAssistantMessageParam{
				ToolCalls: toToolCallParams(msg.ToolCalls),
			}
			if msg.Content != "" {
				assistant.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
					OfString: openai.String(msg.Content),
				}
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})

		case msg.Role == loop.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))

		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

func toToolCallParams(calls []loop.ToolCall) []openai.ChatCompletionMessageToolCallParam {
	out := make([]openai.ChatCompletionMessageToolCallParam, 0, len(calls))
	for _, call := range calls {
		args, err := json.Marshal(call.Args)
		if err != nil {
			args = []byte("{}")
		}
		out = append(out, openai.ChatCompletionMessageToolCallParam{
			ID: call.ID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      call.Name,
				Arguments: string(args),
			},
		})
	}
	return out
}

// toChatTools converts tool specs to chat completion tool definitions.
func toChatTools(specs []loop.ToolSpec) []openai.ChatCompletionToolParam {
	out := make([]openai.ChatCompletionToolParam, 0, len(specs))
	for _, spec := range specs {
		fn := shared.FunctionDefinitionParam{
			Name:        spec.Name,
			Description: openai.String(spec.Description),
		}
		if len(spec.Schema) > 0 {
			fn.Parameters = shared.FunctionParameters(spec.Schema)
		}
		out = append(out, openai.ChatCompletionToolParam{Function: fn})
	}
	return out
}

// fromChatCompletion converts an OpenAI response to a loop message.
func fromChatCompletion(resp *openai.ChatCompletion) (loop.Message, error) {
	if len(resp.Choices) == 0 {
		return loop.Message{}, &loop.MalformedResponseError{Reason: "response contains no choices"}
	}
	choice := resp.Choices[0]

	reply := loop.Message{
		Role:    loop.RoleAssistant,
		Content: choice.Message.Content,
	}
	for _, tc := range choice.Message.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return loop.Message{}, &loop.MalformedResponseError{
					Reason: fmt.Sprintf("tool call %q arguments are not a JSON object: %v", tc.Function.Name, err),
				}
			}
		}
		reply.ToolCalls = append(reply.ToolCalls, loop.ToolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: args,
		})
	}
	return reply, nil
}
