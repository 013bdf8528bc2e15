package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "agendamento_12345", slugify("agendamento 12345"))
	assert.Equal(t, "raspagem_cotacoes", slugify("Raspagem Cotacoes"))
	// non-ASCII is dropped rather than guessed at
	assert.Equal(t, "cotaes", slugify("cotações"))
	assert.Equal(t, "monitoramento_reload_9", slugify("monitoramento reload 9"))
	assert.Equal(t, "captura", slugify("???"))
}

func TestRecorderRunID(t *testing.T) {
	a := NewRecorder(t.TempDir(), zap.NewNop())
	b := NewRecorder(t.TempDir(), zap.NewNop())

	assert.Len(t, a.RunID(), 8)
	assert.NotEqual(t, a.RunID(), b.RunID())
}
