package gemini

import (
	"context"

	"bundasehat/internal/models"
)

const advisorInstruction = `You are 'BundaSehat', a friendly and supportive personal nutrition and health assistant for pregnant women.
IMPORTANT: Always reply in the SAME LANGUAGE as the user's last message.
If the user speaks Indonesian, reply in polite, soothing Indonesian.
If the user speaks English, reply in English.
Focus on nutrition, food safety, and general well-being. For medical emergencies, advise seeing a doctor immediately.`

// Chat sends one advisor turn. The gateway keeps no session state: the
// full prior-turn sequence travels with every call. Failures surface as
// an apologetic reply, never as an error.
func (c *Client) Chat(ctx context.Context, history []models.ChatMessage, message string) string {
	if !c.Configured() {
		return "Mohon konfigurasi API Key terlebih dahulu."
	}

	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, content{
			Role:  turn.Role,
			Parts: []part{{Text: turn.Text}},
		})
	}
	contents = append(contents, content{
		Role:  models.RoleUser,
		Parts: []part{{Text: message}},
	})

	reply, err := c.generate(ctx, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: advisorInstruction}}},
		Contents:          contents,
	})
	if err != nil {
		logFailure("chat", err)
		return "Maaf, terjadi kesalahan koneksi. Silakan coba lagi nanti."
	}
	if reply == "" {
		return "Maaf, saya sedang mengalami gangguan sebentar."
	}
	return reply
}
