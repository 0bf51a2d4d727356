package assistant

// WebhookRequest is the fulfillment payload posted by the
// conversational-AI platform.
type WebhookRequest struct {
	Session     string      `json:"session"`
	QueryResult QueryResult `json:"queryResult"`
}

// QueryResult carries the matched intent and its extracted parameters
type QueryResult struct {
	QueryText  string                 `json:"queryText"`
	Intent     Intent                 `json:"intent"`
	Parameters map[string]interface{} `json:"parameters"`
}

// Intent identifies what the user asked for
type Intent struct {
	DisplayName string `json:"displayName"`
}

// WebhookResponse is the fulfillment reply: plain text messages plus
// optional rich-content cards the chat widget renders.
type WebhookResponse struct {
	FulfillmentMessages []FulfillmentMessage `json:"fulfillmentMessages"`
}

// FulfillmentMessage is either a text message or a rich payload
type FulfillmentMessage struct {
	Text    *TextMessage           `json:"text,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// TextMessage wraps plain text replies
type TextMessage struct {
	Text []string `json:"text"`
}

// Card is one rich-content entry describing a book
type Card struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"rawUrl,omitempty"`
	Link     string `json:"link,omitempty"`
}

func textResponse(lines ...string) WebhookResponse {
	return WebhookResponse{
		FulfillmentMessages: []FulfillmentMessage{
			{Text: &TextMessage{Text: lines}},
		},
	}
}

func cardsResponse(intro string, cards []Card) WebhookResponse {
	entries := make([]interface{}, len(cards))
	for i, card := range cards {
		entries[i] = card
	}
	return WebhookResponse{
		FulfillmentMessages: []FulfillmentMessage{
			{Text: &TextMessage{Text: []string{intro}}},
			{Payload: map[string]interface{}{
				"richContent": [][]interface{}{entries},
			}},
		},
	}
}
