package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/backroom/internal/application/chat"
	"github.com/tu-usuario/backroom/internal/application/ports"
	"github.com/tu-usuario/backroom/internal/domain/entity"
	"github.com/tu-usuario/backroom/pkg/logger"
)

func newPipeline(nlu *fakeNLU, ledger *fakeLedger, transcriber ports.Transcriber, messenger *fakeMessenger) *chat.Pipeline {
	log := logger.Nop()
	audit := chat.NewAuditLog(&fakeTxRepo{}, log)
	exec := chat.NewExecutor(ledger, audit)
	parser := chat.NewIntentService(nlu, log)
	if messenger == nil {
		messenger = &fakeMessenger{}
	}
	return chat.NewPipeline(parser, exec, transcriber, messenger, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atajos que no tocan NLU ni ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessMessage_VacioDevuelveAyudaSinNLU(t *testing.T) {
	nlu := &fakeNLU{}
	pipe := newPipeline(nlu, newFakeLedger(), nil, nil)

	reply := pipe.ProcessMessage(context.Background(), chat.IncomingMessage{UserID: testUser, Text: "   "})

	assert.Contains(t, reply, "👋 Welcome to The Backroom!")
	assert.Zero(t, nlu.calls, "mensaje vacío jamás llega al parser")
}

func TestProcessMessage_ComandosDeAyuda(t *testing.T) {
	for _, msg := range []string{"help", "HELP", " hi ", "Menu", "?"} {
		t.Run(msg, func(t *testing.T) {
			nlu := &fakeNLU{}
			pipe := newPipeline(nlu, newFakeLedger(), nil, nil)

			reply := pipe.ProcessMessage(context.Background(), chat.IncomingMessage{UserID: testUser, Text: msg})

			assert.Contains(t, reply, "👋 Welcome to The Backroom!")
			assert.Zero(t, nlu.calls, "los comandos de ayuda se resuelven sin NLU")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Puerta de confianza
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessMessage_BajaConfianzaPideAclaracion(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed("screws", 20, "boxes")
	nlu := &fakeNLU{intent: &entity.ParsedIntent{
		Action:     entity.ActionRemove,
		Items:      []entity.IntentItem{{Name: "screws", Quantity: decimal.NewFromInt(5)}},
		Confidence: 0.3,
	}}
	pipe := newPipeline(nlu, ledger, nil, nil)

	reply := pipe.ProcessMessage(context.Background(), chat.IncomingMessage{UserID: testUser, Text: "mmm screws maybe"})

	assert.Contains(t, reply, "🤔 I'm not quite sure what you mean by:")
	assert.Contains(t, reply, `"mmm screws maybe"`)
	assert.Equal(t, "20", ledger.items["screws"].Quantity.String(),
		"una interpretación dudosa no muta el ledger")
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessMessage_VentaDePanelesExtremoAExtremo(t *testing.T) {
	ledger := newFakeLedger()
	ledger.seed("solar panels", 23, "pieces")
	nlu := &fakeNLU{intent: &entity.ParsedIntent{
		Action:     entity.ActionRemove,
		Items:      []entity.IntentItem{{Name: "solar panels", Quantity: decimal.NewFromInt(3), Unit: "pieces"}},
		Confidence: 0.95,
	}}
	pipe := newPipeline(nlu, ledger, nil, nil)

	reply := pipe.ProcessMessage(context.Background(), chat.IncomingMessage{UserID: testUser, Text: "Sold 3 solar panels"})

	assert.Contains(t, reply, "✅ Removed from inventory:")
	assert.Contains(t, reply, "3 pieces of solar panels")
	assert.Equal(t, "20", ledger.items["solar panels"].Quantity.String())
}

func TestProcessMessage_NLUCaidoDegradaAlRespaldo(t *testing.T) {
	ledger := newFakeLedger()
	nlu := &fakeNLU{err: errors.New("timeout")}
	pipe := newPipeline(nlu, ledger, nil, nil)

	reply := pipe.ProcessMessage(context.Background(), chat.IncomingMessage{UserID: testUser, Text: "Added 10 boxes of nails"})

	assert.Contains(t, reply, "✅ Added to inventory:", "el respaldo por regex mantiene el servicio")
	require.Contains(t, ledger.items, "nails")
	assert.Equal(t, "10", ledger.items["nails"].Quantity.String())
}

func TestProcessMessage_PanicColapsaEnDisculpa(t *testing.T) {
	ledger := newFakeLedger()
	ledger.panic = true
	nlu := &fakeNLU{intent: &entity.ParsedIntent{
		Action:     entity.ActionAdd,
		Items:      []entity.IntentItem{{Name: "nails", Quantity: decimal.NewFromInt(1)}},
		Confidence: 0.9,
	}}
	pipe := newPipeline(nlu, ledger, nil, nil)

	reply := pipe.ProcessMessage(context.Background(), chat.IncomingMessage{UserID: testUser, Text: "add 1 nails"})

	assert.Equal(t, "❌ Sorry, something went wrong. Please try again in a moment.", reply,
		"ningún panic escapa del pipeline")
}

func TestProcessMessage_ErrorDeStorageColapsaEnDisculpa(t *testing.T) {
	ledger := newFakeLedger()
	ledger.errOn = "nails"
	nlu := &fakeNLU{intent: &entity.ParsedIntent{
		Action:     entity.ActionAdd,
		Items:      []entity.IntentItem{{Name: "nails", Quantity: decimal.NewFromInt(1)}},
		Confidence: 0.9,
	}}
	pipe := newPipeline(nlu, ledger, nil, nil)

	reply := pipe.ProcessMessage(context.Background(), chat.IncomingMessage{UserID: testUser, Text: "add 1 nails"})

	assert.Contains(t, reply, "❌ Sorry, something went wrong")
}

// ──────────────────────────────────────────────────────────────────────────────
// Notas de voz
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessMessage_NotaDeVozTranscrita(t *testing.T) {
	ledger := newFakeLedger()
	nlu := &fakeNLU{intent: &entity.ParsedIntent{
		Action:     entity.ActionAdd,
		Items:      []entity.IntentItem{{Name: "nails", Quantity: decimal.NewFromInt(10), Unit: "boxes"}},
		Confidence: 0.9,
	}}
	messenger := &fakeMessenger{audio: []byte("ogg-bytes")}
	pipe := newPipeline(nlu, ledger, &fakeTranscriber{text: "Added 10 boxes of nails"}, messenger)

	reply := pipe.ProcessMessage(context.Background(), chat.IncomingMessage{
		UserID:      testUser,
		IsVoiceNote: true,
		AudioID:     "media-123",
		AudioMIME:   "audio/ogg; codecs=opus",
	})

	assert.Contains(t, reply, "✅ Added to inventory:")
	assert.Equal(t, 1, nlu.calls, "el texto transcrito sigue el mismo camino que un mensaje escrito")
}

func TestProcessMessage_TranscripcionFallidaRespondeFijo(t *testing.T) {
	messenger := &fakeMessenger{audio: []byte("x")}
	pipe := newPipeline(&fakeNLU{}, newFakeLedger(), &fakeTranscriber{err: errors.New("whisper caído")}, messenger)

	reply := pipe.ProcessMessage(context.Background(), chat.IncomingMessage{
		UserID: testUser, IsVoiceNote: true, AudioID: "media-123",
	})

	assert.Contains(t, reply, "🎤 Sorry, I couldn't understand that voice note.")
}

func TestProcessMessage_VozSinTranscriptorConfigurado(t *testing.T) {
	pipe := newPipeline(&fakeNLU{}, newFakeLedger(), nil, &fakeMessenger{})

	reply := pipe.ProcessMessage(context.Background(), chat.IncomingMessage{
		UserID: testUser, IsVoiceNote: true, AudioID: "media-123",
	})

	assert.Contains(t, reply, "🎤 Sorry, I couldn't understand that voice note.")
}
