// Command agent is an interactive research console: a chat loop where
// the model can call a URL-fetching tool to answer questions about web
// content. It is independent of the review workflow served by cmd/api.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/quizstage/quizstage-backend/internal/config"
	"github.com/quizstage/quizstage-backend/pkg/fetch"
)

const fetchToolName = "fetch_url_content"

// maxToolRounds bounds the tool-call loop for a single query so a
// misbehaving model cannot fetch forever.
const maxToolRounds = 5

func main() {
	config.LoadDotEnv()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		fmt.Println("Error: OPENAI_API_KEY not found in environment variables.")
		fmt.Println("Please create a .env file with your OpenAI API key:")
		fmt.Println("OPENAI_API_KEY=your-api-key-here")
		os.Exit(1)
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-3.5-turbo"
	}

	client := openai.NewClient(apiKey)
	fetcher := fetch.NewClient()

	tools := []openai.Tool{{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        fetchToolName,
			Description: "Fetches the text content from a given URL",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": map[string]interface{}{
						"type":        "string",
						"description": "The URL to fetch content from",
					},
				},
				"required": []string{"url"},
			},
		},
	}}

	fmt.Println("Agent ready! Type 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		fmt.Print("\nEnter your query (or 'exit' to quit): ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if q := strings.ToLower(query); q == "exit" || q == "quit" || q == "q" {
			fmt.Println("Goodbye!")
			return
		}

		fmt.Println("\nProcessing your query...")
		answer, err := runQuery(context.Background(), client, fetcher, model, tools, query)
		if err != nil {
			fmt.Printf("\nError: %v\nPlease try again.\n", err)
			continue
		}

		fmt.Println("\n" + strings.Repeat("=", 50))
		fmt.Println("RESPONSE:")
		fmt.Println(strings.Repeat("=", 50))
		fmt.Println(answer)
		fmt.Println(strings.Repeat("=", 50))
	}
}

// runQuery drives one chat turn, executing fetch tool calls until the
// model produces a final answer.
func runQuery(
	ctx context.Context,
	client *openai.Client,
	fetcher *fetch.Client,
	model string,
	tools []openai.Tool,
	query string,
) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: query},
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    model,
			Messages: messages,
			Tools:    tools,
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no choices returned")
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Content:    executeTool(ctx, fetcher, call),
			})
		}
	}

	return "", fmt.Errorf("no final answer after %d tool rounds", maxToolRounds)
}

// executeTool runs one tool call. Tool failures are reported back to
// the model as text so it can recover or explain.
func executeTool(ctx context.Context, fetcher *fetch.Client, call openai.ToolCall) string {
	if call.Function.Name != fetchToolName {
		return fmt.Sprintf("Unknown tool: %s", call.Function.Name)
	}

	var args struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return fmt.Sprintf("Invalid tool arguments: %v", err)
	}

	fmt.Printf("  fetching %s ...\n", args.URL)
	content, err := fetcher.URLContent(ctx, args.URL)
	if err != nil {
		return fmt.Sprintf("Error fetching URL %s: %v", args.URL, err)
	}
	return content
}
