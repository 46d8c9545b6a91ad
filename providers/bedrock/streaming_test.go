package bedrock

import (
	"testing"

	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	bedrockllm "github.com/haowjy/bedrock-llm-go"
)

func TestTransformConverseStreamEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     brtypes.ConverseStreamOutput
		wantKind  bedrockllm.DeltaKind
		wantText  string
		wantStop  bool
		wantEmpty bool
	}{
		{
			name: "text delta",
			event: &brtypes.ConverseStreamOutputMemberContentBlockDelta{
				Value: brtypes.ContentBlockDeltaEvent{
					Delta: &brtypes.ContentBlockDeltaMemberText{Value: "hello"},
				},
			},
			wantKind: bedrockllm.DeltaKindText,
			wantText: "hello",
		},
		{
			name: "reasoning text delta",
			event: &brtypes.ConverseStreamOutputMemberContentBlockDelta{
				Value: brtypes.ContentBlockDeltaEvent{
					Delta: &brtypes.ContentBlockDeltaMemberReasoningContent{
						Value: &brtypes.ReasoningContentBlockDeltaMemberText{Value: "thinking"},
					},
				},
			},
			wantKind: bedrockllm.DeltaKindReasoning,
			wantText: "thinking",
		},
		{
			name: "reasoning signature delta keeps the region open",
			event: &brtypes.ConverseStreamOutputMemberContentBlockDelta{
				Value: brtypes.ContentBlockDeltaEvent{
					Delta: &brtypes.ContentBlockDeltaMemberReasoningContent{
						Value: &brtypes.ReasoningContentBlockDeltaMemberSignature{Value: "sig"},
					},
				},
			},
			wantKind: bedrockllm.DeltaKindReasoning,
			wantText: "",
		},
		{
			name: "content block stop",
			event: &brtypes.ConverseStreamOutputMemberContentBlockStop{
				Value: brtypes.ContentBlockStopEvent{},
			},
			wantStop: true,
		},
		{
			name: "message start is ignored",
			event: &brtypes.ConverseStreamOutputMemberMessageStart{
				Value: brtypes.MessageStartEvent{Role: brtypes.ConversationRoleAssistant},
			},
			wantEmpty: true,
		},
		{
			name: "content block start is ignored",
			event: &brtypes.ConverseStreamOutputMemberContentBlockStart{
				Value: brtypes.ContentBlockStartEvent{},
			},
			wantEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := transformConverseStreamEvent(tt.event)

			if tt.wantEmpty {
				if ev.Delta != nil || ev.BlockStop || ev.Err != nil {
					t.Errorf("expected empty event, got %+v", ev)
				}
				return
			}

			if tt.wantStop {
				if !ev.BlockStop {
					t.Error("expected block stop event")
				}
				if ev.Delta != nil {
					t.Errorf("block stop should carry no delta, got %+v", ev.Delta)
				}
				return
			}

			if ev.Delta == nil {
				t.Fatalf("expected delta, got %+v", ev)
			}
			if ev.Delta.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", ev.Delta.Kind, tt.wantKind)
			}
			if ev.Delta.Text != tt.wantText {
				t.Errorf("text = %q, want %q", ev.Delta.Text, tt.wantText)
			}
		})
	}
}

// The transformed events must drive the reasoning transducer correctly: a
// Converse stream's reasoning run comes out wrapped in markers.
func TestTransformedEventsThroughTransducer(t *testing.T) {
	raw := []brtypes.ConverseStreamOutput{
		&brtypes.ConverseStreamOutputMemberMessageStart{
			Value: brtypes.MessageStartEvent{Role: brtypes.ConversationRoleAssistant},
		},
		&brtypes.ConverseStreamOutputMemberContentBlockDelta{
			Value: brtypes.ContentBlockDeltaEvent{
				Delta: &brtypes.ContentBlockDeltaMemberReasoningContent{
					Value: &brtypes.ReasoningContentBlockDeltaMemberText{Value: "step"},
				},
			},
		},
		&brtypes.ConverseStreamOutputMemberContentBlockDelta{
			Value: brtypes.ContentBlockDeltaEvent{
				Delta: &brtypes.ContentBlockDeltaMemberReasoningContent{
					Value: &brtypes.ReasoningContentBlockDeltaMemberSignature{Value: "sig"},
				},
			},
		},
		&brtypes.ConverseStreamOutputMemberContentBlockStop{
			Value: brtypes.ContentBlockStopEvent{},
		},
		&brtypes.ConverseStreamOutputMemberContentBlockDelta{
			Value: brtypes.ContentBlockDeltaEvent{
				Delta: &brtypes.ContentBlockDeltaMemberText{Value: "answer"},
			},
		},
		&brtypes.ConverseStreamOutputMemberContentBlockStop{
			Value: brtypes.ContentBlockStopEvent{},
		},
	}

	tr := bedrockllm.NewTransducer()
	var fragments []string
	for _, e := range raw {
		fragments = append(fragments, tr.Step(transformConverseStreamEvent(e))...)
	}
	fragments = append(fragments, tr.Flush()...)

	want := []string{
		bedrockllm.ReasoningOpenMarker,
		"step",
		bedrockllm.ReasoningCloseMarker,
		"answer",
	}
	if len(fragments) != len(want) {
		t.Fatalf("fragments = %q, want %q", fragments, want)
	}
	for i := range want {
		if fragments[i] != want[i] {
			t.Errorf("fragment[%d] = %q, want %q", i, fragments[i], want[i])
		}
	}
}
