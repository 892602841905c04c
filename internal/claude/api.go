package claude

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/ShayCichocki/swarmie/pkg/models"
)

// APIConfig configures an APIRunner.
type APIConfig struct {
	// APIKey is the Anthropic API key. If empty, uses ANTHROPIC_API_KEY.
	APIKey string
	// Model is the Claude model to use. Defaults to Sonnet.
	Model string
	// MaxTokens caps the response length. Defaults to 8192.
	MaxTokens int64
	// UseBedrock routes requests through AWS Bedrock instead of the
	// direct API.
	UseBedrock bool
	// AWSRegion is the Bedrock region (e.g. "us-west-2").
	AWSRegion string
	// AWSProfile is an optional AWS shared-config profile name.
	AWSProfile string
}

// APIRunner invokes Claude through the Anthropic Messages API instead of
// the CLI subprocess. Tool allow-lists are not enforceable on this
// backend and are ignored; results otherwise match the subprocess
// runner's shape, including the JSON-or-raw-text degradation.
type APIRunner struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// NewAPIRunner creates an APIRunner for the direct API or Bedrock.
func NewAPIRunner(cfg APIConfig) (*APIRunner, error) {
	var opts []option.RequestOption

	if cfg.UseBedrock {
		ctx := context.Background()

		var loadOpts []func(*config.LoadOptions) error
		if cfg.AWSRegion != "" {
			loadOpts = append(loadOpts, config.WithRegion(cfg.AWSRegion))
		}
		if cfg.AWSProfile != "" {
			loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.AWSProfile))
		}

		opts = append(opts, bedrock.WithLoadDefaultConfig(ctx, loadOpts...))
	} else {
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	model := anthropic.Model(cfg.Model)
	if model == "" {
		model = anthropic.ModelClaudeSonnet4_20250514
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	return &APIRunner{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Run sends the prompt as a single user message and collects the text
// blocks of the response.
func (r *APIRunner) Run(ctx context.Context, req Request) models.InvokeResult {
	resp, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     r.model,
		MaxTokens: r.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return models.Fail(fmt.Sprintf("API call failed: %v", err))
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(variant.Text)
		}
	}

	return parseStdout([]byte(text.String()))
}

// Verify APIRunner implements Runner at compile time.
var _ Runner = (*APIRunner)(nil)
