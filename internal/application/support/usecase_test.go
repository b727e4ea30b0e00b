package support_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/backroom/internal/application/dto"
	"github.com/tu-usuario/backroom/internal/application/support"
	"github.com/tu-usuario/backroom/internal/domain"
	"github.com/tu-usuario/backroom/pkg/logger"
)

type fakeAssistant struct {
	reply string
	err   error
	calls int
}

func (f *fakeAssistant) SupportReply(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestChat_PreguntaDeNegocioLlegaAlModelo(t *testing.T) {
	assistant := &fakeAssistant{reply: "The Backroom offers a 14-day free trial."}
	uc := support.NewUseCase(assistant, logger.Nop())

	resp, err := uc.Chat(context.Background(), dto.SupportRequest{Message: "How does the free trial work?"})
	require.NoError(t, err)
	assert.Equal(t, "The Backroom offers a 14-day free trial.", resp.Reply)
	assert.Equal(t, 1, assistant.calls)
}

func TestChat_TemaVetadoNoTocaElModelo(t *testing.T) {
	vetados := []string{
		"What do you think about politics?",
		"Can you give me medical advice?",
		"Help me hack a server",
	}
	for _, msg := range vetados {
		t.Run(msg, func(t *testing.T) {
			assistant := &fakeAssistant{}
			uc := support.NewUseCase(assistant, logger.Nop())

			resp, err := uc.Chat(context.Background(), dto.SupportRequest{Message: msg})
			require.NoError(t, err)
			assert.Contains(t, resp.Reply, "I'm here to help with questions about The Backroom")
			assert.Zero(t, assistant.calls, "los temas vetados se redirigen sin llamar al modelo")
		})
	}
}

func TestChat_MensajeVacio(t *testing.T) {
	uc := support.NewUseCase(&fakeAssistant{}, logger.Nop())

	_, err := uc.Chat(context.Background(), dto.SupportRequest{Message: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChat_ErrorDelModeloSePropaga(t *testing.T) {
	assistant := &fakeAssistant{err: errors.New("quota exceeded")}
	uc := support.NewUseCase(assistant, logger.Nop())

	_, err := uc.Chat(context.Background(), dto.SupportRequest{Message: "pricing?"})
	assert.Error(t, err)
}
