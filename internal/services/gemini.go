package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/afiqzx/botrelay-backend/internal/config"
	"github.com/afiqzx/botrelay-backend/internal/models"
	"github.com/afiqzx/botrelay-backend/internal/storage"
)

// GeminiService calls the Google generative-language API with the
// persona, rules and rolling history framed as alternating chat turns.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	store   storage.Store
	client  *http.Client
}

// NewGeminiService creates a new Gemini service instance
func NewGeminiService(cfg *config.Config, store storage.Store) *GeminiService {
	return &GeminiService{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		baseURL: cfg.GeminiBaseURL,
		store:   store,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiSafetyRating struct {
	Category    string `json:"category"`
	Probability string `json:"probability"`
	Blocked     bool   `json:"blocked"`
}

type geminiResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	PromptFeedback *struct {
		SafetyRatings []geminiSafetyRating `json:"safetyRatings"`
	} `json:"promptFeedback"`
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// buildContents assembles the request buffer: a persona instruction pair,
// a rules instruction pair, the stored history in chronological order,
// then the new prompt as the final user turn. Unrecognized history roles
// are coerced to "user" so an invalid role never reaches the API.
func (g *GeminiService) buildContents(promptText string, rules []string, personality, userID string) []geminiContent {
	var contents []geminiContent

	if personality != "" {
		contents = append(contents,
			geminiContent{Role: models.RoleUser, Parts: []geminiPart{{Text: "Personality instruction: " + personality}}},
			geminiContent{Role: models.RoleModel, Parts: []geminiPart{{Text: "Understood. I will adopt this personality."}}},
		)
	}

	if len(rules) > 0 {
		rulesString := "Rules: " + strings.Join(rules, "\n- ")
		contents = append(contents,
			geminiContent{Role: models.RoleUser, Parts: []geminiPart{{Text: "Rule instruction: " + rulesString}}},
			geminiContent{Role: models.RoleModel, Parts: []geminiPart{{Text: "Understood. I will adhere to these rules."}}},
		)
	}

	history, err := g.store.ListHistory(userID)
	if err != nil {
		// Degrade to stateless generation on a history read failure.
		history = nil
	}
	for _, turn := range history {
		role := turn.Role
		if role != models.RoleUser && role != models.RoleModel {
			role = models.RoleUser
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: turn.Text}}})
	}
	log.Printf("Loaded %d messages from history for user ID %s", len(history), userID)

	contents = append(contents, geminiContent{Role: models.RoleUser, Parts: []geminiPart{{Text: promptText}}})
	return contents
}

// Generate asks Gemini for a reply to promptText on behalf of userID and
// returns the reply text, or a user-facing Malay apology on failure.
//
// The user's prompt is recorded to history exactly once per call, on
// every path; the model's reply is recorded only when a valid reply text
// came back.
func (g *GeminiService) Generate(promptText string, rules []string, personality, userID string) string {
	log.Printf("Getting Gemini response for prompt: '%s' for user ID %s", promptText, userID)

	contents := g.buildContents(promptText, rules, personality, userID)
	body, err := json.Marshal(geminiRequest{Contents: contents})
	if err != nil {
		g.recordUserTurn(userID, promptText)
		log.Printf("Failed to marshal Gemini request: %v", err)
		return "Maaf, saya tidak dapat memproses permintaan anda sekarang (Gemini Network Error)."
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	resp, err := g.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		g.recordUserTurn(userID, promptText)
		log.Printf("Gemini API request failed: %v", err)
		return "Maaf, saya tidak dapat memproses permintaan anda sekarang (Gemini Network Error)."
	}
	defer resp.Body.Close()

	var data geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		g.recordUserTurn(userID, promptText)
		log.Printf("Gemini API response not parseable: %v", err)
		return "Maaf, saya tidak dapat memproses permintaan anda sekarang (Gemini Unexpected Response)."
	}

	if data.Error != nil {
		g.recordUserTurn(userID, promptText)
		msg := data.Error.Message
		if msg == "" {
			msg = "Unknown Error"
		}
		log.Printf("Gemini API returned error: %s", msg)
		return fmt.Sprintf("Maaf, Gemini API mengembalikan ralat: %s.", msg)
	}

	if data.PromptFeedback != nil {
		var safetyIssues []string
		for _, rating := range data.PromptFeedback.SafetyRatings {
			if rating.Probability != "NEGLIGIBLE" && rating.Blocked {
				safetyIssues = append(safetyIssues, fmt.Sprintf("%s (Probability: %s)", rating.Category, rating.Probability))
			}
		}
		if len(safetyIssues) > 0 {
			g.recordUserTurn(userID, promptText)
			issueMessage := fmt.Sprintf("Maaf, mesej anda tidak dapat diproses kerana melanggar polisi keselamatan AI. Isu: %s.", strings.Join(safetyIssues, ", "))
			log.Printf("Gemini API Safety Block: %s Original prompt: %s", issueMessage, promptText)
			return issueMessage
		}
	}

	if len(data.Candidates) > 0 && len(data.Candidates[0].Content.Parts) > 0 && data.Candidates[0].Content.Parts[0].Text != "" {
		replyText := data.Candidates[0].Content.Parts[0].Text
		log.Printf("Gemini response received: '%s'", replyText)
		g.recordUserTurn(userID, promptText)
		if err := g.store.AppendHistory(userID, replyText, models.RoleModel); err != nil {
			log.Printf("Failed to record model turn for %s: %v", userID, err)
		}
		return replyText
	}

	g.recordUserTurn(userID, promptText)
	log.Printf("Gemini API unexpected response or no text for user ID %s", userID)
	return "Maaf, saya tidak dapat memproses permintaan anda sekarang (Gemini Unexpected Response)."
}

func (g *GeminiService) recordUserTurn(userID, promptText string) {
	if err := g.store.AppendHistory(userID, promptText, models.RoleUser); err != nil {
		log.Printf("Failed to record user turn for %s: %v", userID, err)
	}
}
