package handler

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/rl1809/kaos-order/internal/core/domain"
	"github.com/rl1809/kaos-order/internal/core/service"
)

const requestIDKey = "x-request-id"

type GRPCHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewGRPCHandler(orderService *service.OrderService, logger *zap.Logger) *GRPCHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GRPCHandler{orderService: orderService, logger: logger}
}

var _ OrderFormServer = (*GRPCHandler)(nil)

func (h *GRPCHandler) StartSession(ctx context.Context, _ *StartSessionRequest) (*SessionResponse, error) {
	sessionID, form, err := h.orderService.StartSession(ctx)
	if err != nil {
		return nil, h.grpcError(err)
	}
	return &SessionResponse{SessionID: sessionID, Form: mapForm(form)}, nil
}

func (h *GRPCHandler) GetForm(ctx context.Context, req *SessionRequest) (*SessionResponse, error) {
	form, err := h.orderService.Form(ctx, req.SessionID)
	if err != nil {
		return nil, h.grpcError(err)
	}
	return &SessionResponse{SessionID: req.SessionID, Form: mapForm(form)}, nil
}

func (h *GRPCHandler) AddItem(ctx context.Context, req *SessionRequest) (*domain.LineItem, error) {
	item, err := h.orderService.AddItem(ctx, req.SessionID)
	if err != nil {
		return nil, h.grpcError(err)
	}
	return &item, nil
}

func (h *GRPCHandler) RemoveItem(ctx context.Context, req *ItemRequest) (*RemoveItemResponse, error) {
	removed, err := h.orderService.RemoveItem(ctx, req.SessionID, req.ItemID)
	if err != nil {
		return nil, h.grpcError(err)
	}
	form, err := h.orderService.Form(ctx, req.SessionID)
	if err != nil {
		return nil, h.grpcError(err)
	}
	return &RemoveItemResponse{Removed: removed, Form: mapForm(form)}, nil
}

func (h *GRPCHandler) UpdateItem(ctx context.Context, req *ItemEditRequest) (*domain.LineItem, error) {
	item, err := h.orderService.UpdateItem(ctx, req.SessionID, req.ItemID, req.toUpdate())
	if err != nil {
		return nil, h.grpcError(err)
	}
	return &item, nil
}

func (h *GRPCHandler) UpdateCustomer(ctx context.Context, req *CustomerEditRequest) (*SessionResponse, error) {
	form, err := h.orderService.UpdateCustomer(ctx, req.SessionID, service.CustomerUpdate{
		Name:  req.CustomerName,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		return nil, h.grpcError(err)
	}
	return &SessionResponse{SessionID: req.SessionID, Form: mapForm(form)}, nil
}

func (h *GRPCHandler) GetSummary(ctx context.Context, req *SessionRequest) (*SummaryResponse, error) {
	summary, ok, err := h.orderService.Summary(ctx, req.SessionID)
	if err != nil {
		return nil, h.grpcError(err)
	}
	if !ok {
		return &SummaryResponse{}, nil
	}
	return &SummaryResponse{Available: true, Summary: &summary}, nil
}

func (h *GRPCHandler) Submit(ctx context.Context, req *SessionRequest) (*HandoffResponse, error) {
	result, err := h.orderService.Submit(ctx, req.SessionID)
	if err != nil {
		return nil, h.grpcError(err)
	}
	resp := mapHandoff(result)
	return &resp, nil
}

// grpcError maps service errors to status codes. Validation failures carry
// the customer-facing message.
func (h *GRPCHandler) grpcError(err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingContactInfo), errors.Is(err, domain.ErrNoValidProducts):
		return status.Error(codes.FailedPrecondition, domain.UserMessage(err))
	case errors.Is(err, service.ErrSessionNotFound):
		return status.Error(codes.NotFound, "session not found")
	case errors.Is(err, service.ErrItemNotFound):
		return status.Error(codes.NotFound, "item not found")
	case errors.Is(err, service.ErrAlreadySubmitted):
		return status.Error(codes.AlreadyExists, "order already submitted")
	default:
		h.logger.Error("order service failed", zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}

// UnaryLogger logs every call with the caller's request id, generating one
// when the metadata has none.
func UnaryLogger(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if ids := md.Get(requestIDKey); len(ids) > 0 {
				requestID = ids[0]
			}
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		resp, err := handler(ctx, req)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
		}
		logger.Debug("grpc call", fields...)
		return resp, err
	}
}
