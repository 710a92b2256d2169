/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudeprovider

import (
	"encoding/json"
	"fmt"

	"chainguard.dev/refine/loop"
	"github.com/anthropics/anthropic-sdk-go"
)

// toMessageParams converts loop history to Messages API params. The API
// only accepts tool invocations on the assistant side and tool results on
// the user side, so messages carrying tool calls render as assistant turns
// regardless of their (possibly swapped) role, and consecutive tool
// results coalesce into a single user turn.
func toMessageParams(history []loop.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(history))
	for i := 0; i < len(history); i++ {
		msg := history[i]
		switch {
		case msg.Role == loop.RoleToolResult:
			var blocks []anthropic.ContentBlockParamUnion
			for ; i < len(history) && history[i].Role == loop.RoleToolResult; i++ {
				blocks = append(blocks, toolResultBlock(history[i]))
			}
			i--
			out = append(out, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleUser,
				Content: blocks,
			})

		case len(msg.ToolCalls) > 0:
			var blocks []anthropic.ContentBlockParamUnion
			if msg.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				blocks = append(blocks, anthropic.ContentBlockParamUnion{
					OfToolUse: &anthropic.ToolUseBlockParam{
						ID:    call.ID,
						Name:  call.Name,
						Input: call.Args,
					},
				})
			}
			out = append(out, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleAssistant,
				Content: blocks,
			})

		case msg.Role == loop.RoleAssistant:
			out = append(out, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleAssistant,
				Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(msg.Content)},
			})

		default:
			out = append(out, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(msg.Content)},
			})
		}
	}
	return out
}

func toolResultBlock(msg loop.Message) anthropic.ContentBlockParamUnion {
	return anthropic.ContentBlockParamUnion{
		OfToolResult: &anthropic.ToolResultBlockParam{
			ToolUseID: msg.ToolCallID,
			Content: []anthropic.ToolResultBlockParamContentUnion{{
				OfText: &anthropic.TextBlockParam{Text: msg.Content},
			}},
		},
	}
}

// toToolParams converts tool specs to Claude tool definitions.
func toToolParams(specs []loop.ToolSpec) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(specs))
	for _, spec := range specs {
		tool := anthropic.ToolParam{
			Name:        spec.Name,
			Description: anthropic.String(spec.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Type:       "object",
				Properties: schemaProperties(spec.Schema),
				Required:   schemaRequired(spec.Schema),
			},
		}
		out = append(out, anthropic.ToolUnionParam{OfTool: &tool})
	}
	return out
}

func schemaProperties(schema map[string]any) map[string]any {
	if props, ok := schema["properties"].(map[string]any); ok {
		return props
	}
	return map[string]any{}
}

func schemaRequired(schema map[string]any) []string {
	switch req := schema["required"].(type) {
	case []string:
		return req
	case []any:
		out := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// fromMessage converts an accumulated Claude response to a loop message.
func fromMessage(message anthropic.Message) (loop.Message, error) {
	reply := loop.Message{Role: loop.RoleAssistant}
	for _, content := range message.Content {
		switch content.Type {
		case "text":
			reply.Content += content.Text
		case "tool_use":
			args := map[string]any{}
			if len(content.Input) > 0 {
				if err := json.Unmarshal(content.Input, &args); err != nil {
					return loop.Message{}, &loop.MalformedResponseError{
						Reason: fmt.Sprintf("tool call %q arguments are not a JSON object: %v", content.Name, err),
					}
				}
			}
			reply.ToolCalls = append(reply.ToolCalls, loop.ToolCall{
				ID:   content.ID,
				Name: content.Name,
				Args: args,
			})
		}
	}
	return reply, nil
}
