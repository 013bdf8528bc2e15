package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteRecordGet(t *testing.T) {
	r := NewQuoteRecord(
		[]string{"Protocolo", "Pedido", "Situação"},
		[]string{"12345", "98100", "PENDENTE"},
	)

	v, ok := r.Get("Protocolo")
	require.True(t, ok)
	assert.Equal(t, "12345", v)

	v, ok = r.Get("situação")
	require.True(t, ok)
	assert.Equal(t, "PENDENTE", v)

	_, ok = r.Get("Transportadora")
	assert.False(t, ok)

	assert.Equal(t, "PENDENTE", r.Status())
	assert.Equal(t, []string{"Protocolo", "Pedido", "Situação"}, r.Headers())
}

func TestQuoteRecordContainsAll(t *testing.T) {
	r := NewQuoteRecord(
		[]string{"Protocolo", "Pedido"},
		[]string{"12345", "98100"},
	)

	assert.True(t, r.ContainsAll("12345", "98100"))
	assert.False(t, r.ContainsAll("12345", "77777"))
	assert.False(t, r.ContainsAll(""))
}

func TestQuoteRecordMarshalJSONKeepsColumnOrder(t *testing.T) {
	r := NewQuoteRecord(
		[]string{"Situação", "Protocolo"},
		[]string{"APROVADO", "12345"},
	)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"Situação":"APROVADO","Protocolo":"12345"}`, string(data))
}

func TestScheduleRequestValidate(t *testing.T) {
	req := ScheduleRequest{
		ProtocolID: "12345",
		OrderID:    "98100",
		Driver:     Driver{NationalID: "123.456.789-01"},
	}
	require.NoError(t, req.Validate())

	bad := req
	bad.OrderID = ""
	require.Error(t, bad.Validate())

	bad = req
	bad.Driver.NationalID = " "
	require.Error(t, bad.Validate())

	bad = req
	bad.Vehicle.Trailers = make([]TrailerPair, MaxTrailers+1)
	require.Error(t, bad.Validate())
}
