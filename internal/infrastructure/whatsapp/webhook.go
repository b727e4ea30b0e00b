package whatsapp

// Payload del webhook de la Cloud API. Solo se modelan los campos que la
// aplicación consume; Meta envía bastantes más.

type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []webhookEntry `json:"entry"`
}

type webhookEntry struct {
	ID      string          `json:"id"`
	Changes []webhookChange `json:"changes"`
}

type webhookChange struct {
	Field string       `json:"field"`
	Value webhookValue `json:"value"`
}

type webhookValue struct {
	Metadata struct {
		PhoneNumberID string `json:"phone_number_id"`
	} `json:"metadata"`
	Contacts []struct {
		Profile struct {
			Name string `json:"name"`
		} `json:"profile"`
	} `json:"contacts"`
	Messages []struct {
		ID        string `json:"id"`
		From      string `json:"from"`
		Timestamp string `json:"timestamp"`
		Type      string `json:"type"`
		Text      *struct {
			Body string `json:"body"`
		} `json:"text"`
		Audio *struct {
			ID       string `json:"id"`
			MIMEType string `json:"mime_type"`
			Voice    bool   `json:"voice"`
		} `json:"audio"`
	} `json:"messages"`
}

// MessageData es el mensaje entrante ya aplanado para el pipeline.
type MessageData struct {
	MessageID     string
	From          string
	Timestamp     string
	Type          string
	Text          string
	AudioID       string
	AudioMIME     string
	IsVoiceNote   bool
	ContactName   string
	PhoneNumberID string
}

// ExtractMessageData aplana el primer mensaje del payload. Devuelve nil si el
// evento no trae mensajes (acks de entrega, cambios de estado, etc.).
func ExtractMessageData(payload *WebhookPayload) *MessageData {
	if payload == nil || len(payload.Entry) == 0 {
		return nil
	}
	entry := payload.Entry[0]
	if len(entry.Changes) == 0 {
		return nil
	}
	value := entry.Changes[0].Value
	if len(value.Messages) == 0 {
		return nil
	}

	msg := value.Messages[0]
	data := &MessageData{
		MessageID:     msg.ID,
		From:          msg.From,
		Timestamp:     msg.Timestamp,
		Type:          msg.Type,
		PhoneNumberID: value.Metadata.PhoneNumberID,
	}
	if msg.Text != nil {
		data.Text = msg.Text.Body
	}
	if msg.Audio != nil {
		data.AudioID = msg.Audio.ID
		data.AudioMIME = msg.Audio.MIMEType
		data.IsVoiceNote = msg.Audio.Voice || msg.Type == "audio"
	}
	if len(value.Contacts) > 0 {
		data.ContactName = value.Contacts[0].Profile.Name
	}
	return data
}
