package handler

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/rl1809/kaos-order/internal/core/domain"
)

// The OrderForm service has no generated stubs; its messages are the JSON
// DTOs of this package, carried by a codec registered under "json".
const (
	codecName   = "json"
	serviceName = "kaos.order.v1.OrderForm"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return codecName }

type StartSessionRequest struct{}

type SessionRequest struct {
	SessionID string `json:"session_id"`
}

type ItemRequest struct {
	SessionID string `json:"session_id"`
	ItemID    string `json:"item_id"`
}

type ItemEditRequest struct {
	SessionID string `json:"session_id"`
	ItemID    string `json:"item_id"`
	UpdateItemRequest
}

type CustomerEditRequest struct {
	SessionID string `json:"session_id"`
	UpdateCustomerRequest
}

type SummaryResponse struct {
	Available bool            `json:"available"`
	Summary   *domain.Summary `json:"summary,omitempty"`
}

// OrderFormServer is the server API of the OrderForm service.
type OrderFormServer interface {
	StartSession(context.Context, *StartSessionRequest) (*SessionResponse, error)
	GetForm(context.Context, *SessionRequest) (*SessionResponse, error)
	AddItem(context.Context, *SessionRequest) (*domain.LineItem, error)
	RemoveItem(context.Context, *ItemRequest) (*RemoveItemResponse, error)
	UpdateItem(context.Context, *ItemEditRequest) (*domain.LineItem, error)
	UpdateCustomer(context.Context, *CustomerEditRequest) (*SessionResponse, error)
	GetSummary(context.Context, *SessionRequest) (*SummaryResponse, error)
	Submit(context.Context, *SessionRequest) (*HandoffResponse, error)
}

func RegisterOrderFormServer(s grpc.ServiceRegistrar, srv OrderFormServer) {
	s.RegisterService(&orderFormServiceDesc, srv)
}

func unaryMethod[Req, Resp any](name string, call func(OrderFormServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(OrderFormServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(OrderFormServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var orderFormServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*OrderFormServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("StartSession", OrderFormServer.StartSession),
		unaryMethod("GetForm", OrderFormServer.GetForm),
		unaryMethod("AddItem", OrderFormServer.AddItem),
		unaryMethod("RemoveItem", OrderFormServer.RemoveItem),
		unaryMethod("UpdateItem", OrderFormServer.UpdateItem),
		unaryMethod("UpdateCustomer", OrderFormServer.UpdateCustomer),
		unaryMethod("GetSummary", OrderFormServer.GetSummary),
		unaryMethod("Submit", OrderFormServer.Submit),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "kaos/order/v1/order_form.proto",
}

// OrderFormClient calls the OrderForm service over any gRPC connection.
type OrderFormClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderFormClient(cc grpc.ClientConnInterface) *OrderFormClient {
	return &OrderFormClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderFormClient) StartSession(ctx context.Context, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, "StartSession", &StartSessionRequest{}, opts)
}

func (c *OrderFormClient) GetForm(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, "GetForm", in, opts)
}

func (c *OrderFormClient) AddItem(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*domain.LineItem, error) {
	return invoke[domain.LineItem](ctx, c.cc, "AddItem", in, opts)
}

func (c *OrderFormClient) RemoveItem(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*RemoveItemResponse, error) {
	return invoke[RemoveItemResponse](ctx, c.cc, "RemoveItem", in, opts)
}

func (c *OrderFormClient) UpdateItem(ctx context.Context, in *ItemEditRequest, opts ...grpc.CallOption) (*domain.LineItem, error) {
	return invoke[domain.LineItem](ctx, c.cc, "UpdateItem", in, opts)
}

func (c *OrderFormClient) UpdateCustomer(ctx context.Context, in *CustomerEditRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, "UpdateCustomer", in, opts)
}

func (c *OrderFormClient) GetSummary(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*SummaryResponse, error) {
	return invoke[SummaryResponse](ctx, c.cc, "GetSummary", in, opts)
}

func (c *OrderFormClient) Submit(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*HandoffResponse, error) {
	return invoke[HandoffResponse](ctx, c.cc, "Submit", in, opts)
}
