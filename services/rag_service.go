package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/hr-intervals/hr-assistant/models"
	"github.com/hr-intervals/hr-assistant/pkg/log"
)

// RAGService answers questions grounded in the knowledge base, with
// per-session conversation memory.
type RAGService interface {
	Ask(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

// ChatModel generates a completion for a question given rendered system
// instructions and prior conversation turns.
type ChatModel interface {
	Generate(ctx context.Context, systemPrompt string, history []Turn, question string) (string, error)
}

// geminiChatModel implements ChatModel on the Gemini chat API.
type geminiChatModel struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

// NewGeminiChatModel creates a ChatModel with a fixed temperature. 0.3
// favors deterministic, conservative phrasing for policy answers.
func NewGeminiChatModel(client *genai.Client, model string, temperature float32, timeout time.Duration) ChatModel {
	return &geminiChatModel{client: client, model: model, temperature: temperature, timeout: timeout}
}

func (m *geminiChatModel) Generate(ctx context.Context, systemPrompt string, history []Turn, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	systemContents := genai.Text(systemPrompt)
	if len(systemContents) == 0 {
		return "", fmt.Errorf("empty system prompt")
	}

	historyContents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		historyContents = append(historyContents, &genai.Content{
			Role:  turn.Role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}

	chat, err := m.client.Chats.Create(ctx, m.model, &genai.GenerateContentConfig{
		SystemInstruction: systemContents[0],
		Temperature:       genai.Ptr(m.temperature),
	}, historyContents)
	if err != nil {
		return "", fmt.Errorf("could not start chat: %w", err)
	}

	result, err := chat.SendMessage(ctx, genai.Part{Text: question})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: completion call", models.ErrUpstreamTimeout)
		}
		return "", fmt.Errorf("completion api call failed: %w", err)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("completion api returned no candidates")
	}

	var answer strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			answer.WriteString(part.Text)
		}
	}
	return answer.String(), nil
}

// ragServiceImpl holds the dependencies for the question-answering pipeline.
type ragServiceImpl struct {
	store      VectorStore
	sessions   SessionStore
	chatModel  ChatModel
	topK       int
	maxSources int
}

// NewRAGService creates a RAGService over the given retriever, session store
// and completion model.
func NewRAGService(store VectorStore, sessions SessionStore, chatModel ChatModel, topK, maxSources int) RAGService {
	return &ragServiceImpl{
		store:      store,
		sessions:   sessions,
		chatModel:  chatModel,
		topK:       topK,
		maxSources: maxSources,
	}
}

// Ask retrieves grounding chunks, renders the system prompt, generates an
// answer with the session's history, and appends the exchange to the session.
// Any upstream failure surfaces as models.ErrGenerationFailed; deadline
// expiry keeps its models.ErrUpstreamTimeout identity.
func (r *ragServiceImpl) Ask(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
		log.Infof("no session provided, created %s", sessionID)
	}
	r.sessions.GetOrCreate(sessionID)

	sources, err := r.store.Retrieve(ctx, req.Question, r.topK)
	if err != nil {
		return nil, generationError("retrieval failed", err)
	}

	contents := make([]string, 0, len(sources))
	for _, doc := range sources {
		contents = append(contents, doc.Text)
	}
	systemPrompt := SystemPrompt(strings.Join(contents, "\n\n"))

	history := r.sessions.History(sessionID)
	answer, err := r.chatModel.Generate(ctx, systemPrompt, history, req.Question)
	if err != nil {
		return nil, generationError("completion failed", err)
	}

	r.sessions.Append(sessionID,
		Turn{Role: RoleUser, Text: req.Question},
		Turn{Role: RoleModel, Text: answer},
	)

	shown := sources
	if len(shown) > r.maxSources {
		shown = shown[:r.maxSources]
	}
	return &models.ChatResponse{
		Answer:    answer,
		Sources:   shown,
		SessionID: sessionID,
	}, nil
}

// generationError wraps upstream failures as ErrGenerationFailed while
// preserving an ErrUpstreamTimeout identity when present.
func generationError(msg string, err error) error {
	if errors.Is(err, models.ErrUpstreamTimeout) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%w: %s: %v", models.ErrGenerationFailed, msg, err)
}
