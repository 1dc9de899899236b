package checkout

import (
	"context"
	"fmt"

	"ms-checkout/internal/audit"
	"ms-checkout/internal/config"
	"ms-checkout/internal/logger"
	"ms-checkout/internal/models"
)

// TransactionPublisher streams successful checkouts to downstream
// consumers. Publish failures are non-fatal.
type TransactionPublisher interface {
	PublishTransactionCreated(ctx context.Context, topic string, result models.TransactionResult) error
}

// Service is the payment-plugin shell flow: normalize the raw order,
// validate the derived transaction context, build the gateway redirect
// URL and hand back either a redirect or a structured error code.
type Service struct {
	Gateway config.GatewayConfig
	Builder *Builder
	Audit   audit.Recorder
	Kafka   TransactionPublisher
	Topic   string
	Logger  *logger.Logger
}

func NewService(gateway config.GatewayConfig, builder *Builder, trail audit.Recorder, publisher TransactionPublisher, topic string, log *logger.Logger) *Service {
	return &Service{
		Gateway: gateway,
		Builder: builder,
		Audit:   trail,
		Kafka:   publisher,
		Topic:   topic,
		Logger:  log,
	}
}

// CreateTransaction runs one checkout attempt. Validation failures
// come back as (nil, *TransactionError) so the plugin shell can
// surface the code to the buyer without a stack trace.
func (s *Service) CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) (*models.TransactionResult, *models.TransactionError) {
	order := req.Order

	s.Audit.Record(ctx, "create_transaction_start", map[string]any{
		"order_id":       order.ID,
		"transaction_id": req.TransactionID,
	})

	tx := Normalize(&order, req.TransactionID)

	var items []models.LineItem
	if order.Description != nil {
		items = order.Description.Items
	}
	tx.SuccessURL = EnsureHTTPS(EncodeSuccessURL(s.Gateway.SuccessURL, tx.ShortID, order.ID, order.EventID, items))
	tx.CancelURL = EnsureHTTPS(s.Gateway.CancelURL)
	tx.ErrorURL = EnsureHTTPS(s.Gateway.ErrorURL)

	if verr := ValidateTransaction(req.TransactionID, tx); verr != nil {
		s.Logger.Error("CHECKOUT", fmt.Sprintf("validation failed for order %s: %s", order.ID, verr.Error()))
		s.Audit.Record(ctx, "validation_error", map[string]any{
			"order_id": order.ID,
			"code":     verr.Code,
			"message":  verr.Message,
		})
		return nil, verr
	}

	redirectURL := s.Builder.PaymentURL(ctx, tx)
	if redirectURL == "" {
		s.Logger.Error("CHECKOUT", fmt.Sprintf("no usable redirect URL for order %s", order.ID))
		s.Audit.Record(ctx, "construction_error", map[string]any{
			"order_id": order.ID,
			"short_id": tx.ShortID,
		})
		return nil, &models.TransactionError{Code: models.CodeRedirectURLInvalid, Message: "redirectUrl must be string"}
	}

	result := models.TransactionResult{
		PluginTransactionID: tx.ShortID,
		RedirectURL:         redirectURL,
	}

	if s.Kafka != nil {
		if err := s.Kafka.PublishTransactionCreated(ctx, s.Topic, result); err != nil {
			s.Logger.Warn("CHECKOUT", fmt.Sprintf("kafka publish failed for transaction %s: %v", tx.ShortID, err))
		}
	}

	s.Audit.Record(ctx, "create_transaction_complete", map[string]any{
		"order_id": order.ID,
		"short_id": tx.ShortID,
		"amount":   tx.Amount,
	})
	s.Logger.LogCheckout("CREATE", tx.ShortID, fmt.Sprintf("redirect ready for order %s (%s %s)", order.ID, tx.Amount, tx.Lang))

	return &result, nil
}

// ConnectAccount is the plugin handshake: credentials in, credentials
// out.
func (s *Service) ConnectAccount(ctx context.Context, req models.ConnectAccountRequest) models.ConnectAccountResponse {
	s.Audit.Record(ctx, "connect_account", map[string]any{"fields": len(req.Credentials)})
	return models.ConnectAccountResponse{Credentials: req.Credentials}
}

// RefundTransaction acknowledges a refund request. The gateway has no
// refund API; refunds are settled directly with the provider, so the
// plugin contract is satisfied with an acknowledgement.
func (s *Service) RefundTransaction(ctx context.Context, transactionID string) models.RefundResult {
	s.Audit.Record(ctx, "refund_transaction", map[string]any{"transaction_id": transactionID})
	return models.RefundResult{Success: true}
}
