package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-3-flash-preview"

	// The instruction is deliberately emphatic: without it the model tends
	// to claim it has no access to the user's data even though the full
	// JSON is in the conversation history.
	systemInstruction = "You are a specialized Garmin Running Analyst. " +
		"The user HAS PROVIDED their Garmin activity data below in JSON format. " +
		"You MUST use this provided data to answer all questions. " +
		"DO NOT claim you do not have access to the user's data, as it is provided directly here. " +
		"Answer questions specifically about the runs, laps, heart rate, and speed found in the data. " +
		"If the information is not in the data (like shoe brands or gear), state that it's not provided."
)

// Client wraps the Gemini SDK client.
type Client struct {
	genai *genai.Client
	model string
}

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = defaultModel
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: init client: %w", err)
	}
	return &Client{genai: gc, model: model}, nil
}

// Chat is a stateful conversation seeded with the activity snapshot as
// context. The SDK tracks the history, including streamed replies. Not safe
// for concurrent Sends; the workflow is single-threaded.
type Chat struct {
	chat *genai.Chat
}

// NewChat creates a chat session with the serialized activity JSON as
// context. The data is embedded as a user/model exchange in the history so
// it persists for the whole conversation even if the system instruction is
// overridden.
func (c *Client) NewChat(ctx context.Context, contextJSON string) (*Chat, error) {
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.2),
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}
	history := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(
			"I am providing my Garmin running data in JSON format. "+
				"Please analyze this data and answer my questions based ONLY on it.\n\n"+
				"--- DATA START ---\n%s\n--- DATA END ---", contextJSON), genai.RoleUser),
		genai.NewContentFromText("I have received your Garmin running data. "+
			"I am ready to analyze it and answer specific questions about your runs, "+
			"laps, heart rate, and speed based on the JSON provided.", genai.RoleModel),
	}

	chat, err := c.genai.Chats.Create(ctx, c.model, config, history)
	if err != nil {
		return nil, fmt.Errorf("llm: create chat session: %w", err)
	}
	return &Chat{chat: chat}, nil
}

// Send streams the model's reply to message, invoking onChunk for each text
// fragment as it arrives, and returns the assembled reply once the stream
// ends. The SDK records both the user message and the reply in the history.
func (ch *Chat) Send(ctx context.Context, message string, onChunk func(string)) (string, error) {
	var reply strings.Builder
	for resp, err := range ch.chat.SendMessageStream(ctx, genai.Part{Text: message}) {
		if err != nil {
			return "", fmt.Errorf("llm: %w", err)
		}
		text := resp.Text()
		if text == "" {
			continue
		}
		reply.WriteString(text)
		if onChunk != nil {
			onChunk(text)
		}
	}
	return reply.String(), nil
}
