package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightinventory/internal/events"
	"github.com/Domenick1991/flightinventory/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestReconciliationHandler(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := reconciliationHandler(logger.NewWithCore(core))

	event := events.NewReconciliationEvent("book", "FL-1", "FLAB12CD34", 2, errors.New("store down"), time.Now())
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), payload))

	entries := logs.FilterMessage("inventory reconciliation required").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "FL-1", fields["flight_id"])
	assert.Equal(t, "FLAB12CD34", fields["code"])
	assert.EqualValues(t, 2, fields["seats"])
}

func TestReconciliationHandler_BadPayload(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := reconciliationHandler(logger.NewWithCore(core))

	assert.NoError(t, handler(context.Background(), []byte("{")))
	assert.Equal(t, 1, logs.FilterMessage("decode reconciliation event").Len())
}
