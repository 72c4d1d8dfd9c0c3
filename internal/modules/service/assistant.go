package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/taskflow-io/taskflow/internal/infra/llm"
	"go.uber.org/zap"
)

// Sampling parameters shared by every assistant call. Requests are pure
// request/response: no retry, no caching, no streaming.
const (
	assistantTemperature    = 0.7
	generateTasksMaxTokens  = 1000
	chatMaxTokens           = 500
	summarizeMaxTokens      = 400
	suggestionsMaxTokens    = 600
	defaultProjectNameLabel = "General project"
)

type AssistantService interface {
	GenerateTasks(ctx context.Context, prompt, projectName string) ([]TaskSuggestion, error)
	Chat(ctx context.Context, message string, contextData map[string]interface{}) (string, error)
	SummarizeProject(ctx context.Context, in ProjectSummaryInput) (string, error)
	ProjectSuggestions(ctx context.Context, in SuggestionInput) (string, error)
}

type assistantService struct {
	llm llm.Completer
	log *zap.Logger
}

func NewAssistantService(completer llm.Completer, log *zap.Logger) AssistantService {
	return &assistantService{llm: completer, log: log}
}

// TaskSuggestion is one entry of the structured generate-tasks reply.
type TaskSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

type ProjectSummaryInput struct {
	Name        string
	Description string
	Status      string
	Tasks       []SummaryTask
}

type SummaryTask struct {
	Title    string
	Status   string
	Priority string
}

type SuggestionInput struct {
	ProjectType string
	Goals       string
	Timeframe   string
}

func (s *assistantService) GenerateTasks(ctx context.Context, prompt, projectName string) ([]TaskSuggestion, error) {
	if projectName == "" {
		projectName = defaultProjectNameLabel
	}

	reply, err := s.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: fmt.Sprintf(generateTasksSystemPrompt, projectName)},
		{Role: "user", Content: prompt},
	}, generateTasksMaxTokens, assistantTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var tasks []TaskSuggestion
	if err := sonic.Unmarshal([]byte(stripCodeFence(reply)), &tasks); err != nil || tasks == nil {
		s.log.Sugar().Errorw("assistant reply is not a JSON task array", "reply", reply)
		return nil, ErrUpstreamFormat
	}
	return tasks, nil
}

func (s *assistantService) Chat(ctx context.Context, message string, contextData map[string]interface{}) (string, error) {
	contextLabel := "No specific project context"
	if len(contextData) > 0 {
		if raw, err := sonic.Marshal(contextData); err == nil {
			contextLabel = string(raw)
		}
	}

	reply, err := s.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: fmt.Sprintf(chatSystemPrompt, contextLabel)},
		{Role: "user", Content: message},
	}, chatMaxTokens, assistantTemperature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return reply, nil
}

func (s *assistantService) SummarizeProject(ctx context.Context, in ProjectSummaryInput) (string, error) {
	description := in.Description
	if description == "" {
		description = "No description"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", in.Name)
	fmt.Fprintf(&b, "Description: %s\n", description)
	fmt.Fprintf(&b, "Status: %s\n", in.Status)
	fmt.Fprintf(&b, "Total Tasks: %d\n\nTasks:\n", len(in.Tasks))
	if len(in.Tasks) == 0 {
		b.WriteString("No tasks")
	}
	for _, t := range in.Tasks {
		fmt.Fprintf(&b, "- %s (%s, %s priority)\n", t.Title, t.Status, t.Priority)
	}

	reply, err := s.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: summarizeSystemPrompt},
		{Role: "user", Content: "Summarize this project:\n" + b.String()},
	}, summarizeMaxTokens, assistantTemperature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return reply, nil
}

func (s *assistantService) ProjectSuggestions(ctx context.Context, in SuggestionInput) (string, error) {
	projectType := in.ProjectType
	if projectType == "" {
		projectType = defaultProjectNameLabel
	}
	goals := in.Goals
	if goals == "" {
		goals = "Not specified"
	}
	timeframe := in.Timeframe
	if timeframe == "" {
		timeframe = "Not specified"
	}

	prompt := fmt.Sprintf("Generate project management suggestions for:\nType: %s\nGoals: %s\nTimeframe: %s\n\nPlease provide specific, actionable recommendations.",
		projectType, goals, timeframe)

	reply, err := s.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: suggestionsSystemPrompt},
		{Role: "user", Content: prompt},
	}, suggestionsMaxTokens, assistantTemperature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return reply, nil
}

// stripCodeFence tolerates replies wrapped in a markdown code fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
