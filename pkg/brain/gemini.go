package brain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"leadgen_go/models"
	"leadgen_go/pkg/leadgen"

	"google.golang.org/genai"
)

// systemPrompt задаёт тон всех ответов: полезный участник сообщества,
// а не продавец. Промо-режим добавляет продукт только после совета по
// существу.
const systemPrompt = `You are an experienced video creator who is active in online communities.
You answer questions from fellow creators in a warm, practical tone.

Rules:
1. Lead with genuinely useful, specific advice that addresses the author's problem.
2. Keep it short: 2-4 sentences, conversational, no greetings or sign-offs.
3. Never sound like an advertisement. No superlatives, no pressure.
4. In promotional mode only: after the advice, mention in one casual sentence that
   an AI editing assistant saved you time on exactly this kind of task.
5. In expert-advice mode: do not mention any product at all.`

// ErrQuotaExhausted — все модели упёрлись в лимиты RPM/RPD.
var ErrQuotaExhausted = errors.New("gemini: quota exhausted for all models")

// modelConfig — лимиты одной модели: запросов в минуту и в сутки.
type modelConfig struct {
	Name string
	RPM  int
	RPD  int
}

// GeminiGenerator реализует leadgen.CommentGenerator поверх Gemini.
// Ведёт собственный учёт квот по моделям и при исчерпании или 429
// переключается на следующую модель списка.
type GeminiGenerator struct {
	client *genai.Client
	models []modelConfig

	mu           sync.Mutex
	dailyCount   map[string]int
	minuteCount  map[string]int
	lastResetDay time.Time
	lastResetMin time.Time
}

// NewGeminiGenerator создаёт генератор с набором моделей по умолчанию.
func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &GeminiGenerator{
		client: client,
		models: []modelConfig{
			{Name: "gemini-2.5-flash", RPM: 10, RPD: 250},
			{Name: "gemini-2.5-flash-lite", RPM: 15, RPD: 1000},
		},
		dailyCount:   make(map[string]int),
		minuteCount:  make(map[string]int),
		lastResetDay: time.Now(),
		lastResetMin: time.Now(),
	}, nil
}

var _ leadgen.CommentGenerator = (*GeminiGenerator)(nil)

// Generate строит промпт под режим ответа и опрашивает модели по
// очереди, пока одна не ответит. Ошибка возвращается вызывающему, у
// которого всегда есть детерминированная заготовка.
func (g *GeminiGenerator) Generate(ctx context.Context, req leadgen.GenerationRequest) (string, error) {
	prompt := buildPrompt(req)

	var lastErr error
	for _, cfg := range g.models {
		if !g.canUseModel(cfg) {
			continue
		}

		result, err := g.client.Models.GenerateContent(ctx, cfg.Name, genai.Text(prompt), nil)
		if err != nil {
			errStr := strings.ToLower(err.Error())
			if strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit") ||
				strings.Contains(errStr, "exhausted") || strings.Contains(errStr, "not found") {
				lastErr = err
				continue
			}
			return "", err
		}

		if result != nil && len(result.Candidates) > 0 && len(result.Candidates[0].Content.Parts) > 0 {
			g.recordUsage(cfg)
			return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: %v", ErrQuotaExhausted, lastErr)
	}
	return "", ErrQuotaExhausted
}

// buildPrompt собирает промпт из поста, болевых точек и режима ответа.
func buildPrompt(req leadgen.GenerationRequest) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")

	switch req.Mode {
	case models.ResponsePromotional:
		b.WriteString("Mode: promotional.\n")
	case models.ResponseBridge:
		b.WriteString("Mode: expert-advice.\n")
		// Для bridge-ответа вместо чужой боли — наша заготовка темы.
		fmt.Fprintf(&b, "Task: %s\n", req.Prompt)
	default:
		b.WriteString("Mode: expert-advice.\n")
	}

	fmt.Fprintf(&b, "Community: %s (%s)\n", req.Destination.Title, req.Destination.ID)
	if req.PostTitle != "" {
		fmt.Fprintf(&b, "Post title: %s\n", req.PostTitle)
	}
	if req.PostBody != "" {
		fmt.Fprintf(&b, "Post body: %s\n", req.PostBody)
	}
	if len(req.PainPoints) > 0 {
		fmt.Fprintf(&b, "Detected pain points: %s\n", strings.Join(req.PainPoints, ", "))
	}
	b.WriteString("\nWrite the reply now. Output only the reply text.")
	return b.String()
}

// canUseModel проверяет лимиты модели, сбрасывая счётчики по границам
// минуты и суток.
func (g *GeminiGenerator) canUseModel(cfg modelConfig) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now()
	if now.YearDay() != g.lastResetDay.YearDay() {
		g.dailyCount = make(map[string]int)
		g.lastResetDay = now
	}
	if now.Sub(g.lastResetMin) >= time.Minute {
		g.minuteCount = make(map[string]int)
		g.lastResetMin = now
	}
	if g.dailyCount[cfg.Name] >= cfg.RPD {
		return false
	}
	if g.minuteCount[cfg.Name] >= cfg.RPM {
		return false
	}
	return true
}

func (g *GeminiGenerator) recordUsage(cfg modelConfig) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dailyCount[cfg.Name]++
	g.minuteCount[cfg.Name]++
}
