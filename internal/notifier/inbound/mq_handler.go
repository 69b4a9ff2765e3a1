package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/otpgate/otpgate/internal/notifier/usecase"
	"github.com/otpgate/otpgate/internal/pkg/instrument"
	"github.com/otpgate/otpgate/internal/pkg/messaging"
	"github.com/otpgate/otpgate/internal/pkg/uid"
	"github.com/otpgate/otpgate/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type uc interface {
	ConsumeAccountEnrolled(ctx context.Context, in usecase.ConsumeAccountEnrolledInput) error
}

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) AccountEnrolledNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notifier.inbound.mq").Start(ctx, "AccountEnrolledNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: account enrolled notification", "msg_body", string(body))

	var payload event.AccountEnrolledMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of account enrolled notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeAccountEnrolled(ctx, usecase.ConsumeAccountEnrolledInput{
		AccountID:       payload.AccountID,
		Username:        payload.Username,
		Email:           payload.Email,
		ProvisioningURI: payload.ProvisioningURI,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume account enrolled", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
