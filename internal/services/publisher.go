package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"walletledger/internal/logger"
	"walletledger/internal/models"
)

// publishOperation publishes a committed operation to Kafka, keyed by group id.
// Publishing is fire-and-forget: a broker failure is logged, never surfaced.
func (s *WalletService) publishOperation(ctx context.Context, operation string, entries []models.LedgerEntry) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("kafka writer not configured, skipping publishing", "operation", operation)
		return
	}
	if len(entries) == 0 {
		return
	}

	lead := entries[0]
	event := models.OperationEvent{
		GroupID:         lead.GroupID.String(),
		Operation:       operation,
		WalletID:        lead.WalletID,
		RelatedWalletID: lead.RelatedWalletID,
		Amount:          lead.Amount,
		Currency:        lead.Currency,
		Timestamp:       time.Now().Unix(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal operation event", "group_id", event.GroupID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.GroupID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish operation event", "group_id", event.GroupID, "error", err)
	} else {
		logger.Log.Infow("operation event published", "group_id", event.GroupID, "operation", operation, "amount", event.Amount)
	}
}
