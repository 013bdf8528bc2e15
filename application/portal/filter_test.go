package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fretebot/domain/entities"
)

func TestStatusFilterAllows(t *testing.T) {
	f := DefaultStatusFilter()

	assert.True(t, f.Allows("PENDENTE"))
	assert.True(t, f.Allows("APROVADO"))
	assert.True(t, f.Allows("aprovado"))
	assert.True(t, f.Allows("  Pendente  "))
	assert.False(t, f.Allows("RECUSADO"))
	assert.False(t, f.Allows(""))
}

func TestStatusFilterEmptyKeepsEverything(t *testing.T) {
	var f StatusFilter
	assert.True(t, f.Allows("RECUSADO"))
	assert.True(t, f.Allows("qualquer coisa"))
}

func TestStatusFilterApply(t *testing.T) {
	records := []entities.QuoteRecord{
		entities.NewQuoteRecord([]string{"Protocolo", "Situação"}, []string{"1", "PENDENTE"}),
		entities.NewQuoteRecord([]string{"Protocolo", "Situação"}, []string{"2", "RECUSADO"}),
		entities.NewQuoteRecord([]string{"Protocolo", "Situação"}, []string{"3", "APROVADO"}),
	}

	kept := StatusFilter{"APROVADO"}.Apply(records)
	require.Len(t, kept, 1)
	v, _ := kept[0].Get("Protocolo")
	assert.Equal(t, "3", v)

	// result preserves grid order
	kept = DefaultStatusFilter().Apply(records)
	require.Len(t, kept, 2)
	first, _ := kept[0].Get("Protocolo")
	second, _ := kept[1].Get("Protocolo")
	assert.Equal(t, "1", first)
	assert.Equal(t, "3", second)
}

func TestStatusFilterApplyWithoutStatusColumn(t *testing.T) {
	records := []entities.QuoteRecord{
		entities.NewQuoteRecord([]string{"Protocolo"}, []string{"1"}),
	}
	assert.Empty(t, StatusFilter{"APROVADO"}.Apply(records))
	assert.Len(t, StatusFilter{}.Apply(records), 1)
}
