package genai

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// chain binds one prompt template to one typed output schema. The model is
// forced to answer through a single tool call whose arguments conform to
// the JSON schema derived from TOutput, so a well-formed response always
// parses into TOutput.
type chain[TInput, TOutput any] struct {
	build    func(input TInput) []*schema.Message
	model    model.ToolCallingChatModel
	toolInfo *schema.ToolInfo
}

func newChain[TInput, TOutput any](
	chatModel model.ToolCallingChatModel,
	build func(input TInput) []*schema.Message,
	toolName string,
	toolDesc string,
) (*chain[TInput, TOutput], error) {
	toolInfo, err := utils.GoStruct2ToolInfo[TOutput](toolName, toolDesc)
	if err != nil {
		return nil, fmt.Errorf("deriving tool schema for %s: %w", toolName, err)
	}

	return &chain[TInput, TOutput]{
		build:    build,
		model:    chatModel,
		toolInfo: toolInfo,
	}, nil
}

// invoke performs a single model call. There are no retries; the caller
// classifies any returned error as a generation failure.
func (c *chain[TInput, TOutput]) invoke(ctx context.Context, input TInput) (*TOutput, error) {
	messages := c.build(input)

	response, err := c.model.Generate(ctx, messages,
		model.WithTools([]*schema.ToolInfo{c.toolInfo}),
		model.WithToolChoice(schema.ToolChoiceForced, c.toolInfo.Name),
	)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	if len(response.ToolCalls) == 0 {
		return nil, fmt.Errorf("model response contained no tool call")
	}

	var result TOutput
	if err := sonic.UnmarshalString(response.ToolCalls[0].Function.Arguments, &result); err != nil {
		return nil, fmt.Errorf("parsing tool call arguments: %w", err)
	}

	return &result, nil
}
