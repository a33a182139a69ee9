package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "gophbot.v1.ChatService"

// Full method names, as seen by interceptors.
const (
	MethodChat        = "/" + serviceName + "/Chat"
	MethodLogin       = "/" + serviceName + "/Login"
	MethodRegister    = "/" + serviceName + "/Register"
	MethodTeach       = "/" + serviceName + "/Teach"
	MethodListHistory = "/" + serviceName + "/ListHistory"
)

// ChatServiceServer is the server API of gophbot.v1.ChatService.
type ChatServiceServer interface {
	Chat(context.Context, *ChatRequest) (*ChatResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Teach(context.Context, *TeachRequest) (*TeachResponse, error)
	ListHistory(context.Context, *ListHistoryRequest) (*ListHistoryResponse, error)
}

// RegisterChatServiceServer registers srv with s.
func RegisterChatServiceServer(s grpc.ServiceRegistrar, srv ChatServiceServer) {
	s.RegisterService(&chatServiceDesc, srv)
}

// unary builds a MethodDesc handler for one request type.
func unary[Req any, Resp any](method string, call func(ChatServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ChatServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ChatServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var chatServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ChatServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Chat", Handler: unary(MethodChat, ChatServiceServer.Chat)},
		{MethodName: "Login", Handler: unary(MethodLogin, ChatServiceServer.Login)},
		{MethodName: "Register", Handler: unary(MethodRegister, ChatServiceServer.Register)},
		{MethodName: "Teach", Handler: unary(MethodTeach, ChatServiceServer.Teach)},
		{MethodName: "ListHistory", Handler: unary(MethodListHistory, ChatServiceServer.ListHistory)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophbot/v1/chat",
}

// Client calls gophbot.v1.ChatService with the JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Chat(ctx context.Context, in *ChatRequest, opts ...grpc.CallOption) (*ChatResponse, error) {
	return invoke[ChatResponse](ctx, c, MethodChat, in, opts)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c, MethodLogin, in, opts)
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c, MethodRegister, in, opts)
}

func (c *Client) Teach(ctx context.Context, in *TeachRequest, opts ...grpc.CallOption) (*TeachResponse, error) {
	return invoke[TeachResponse](ctx, c, MethodTeach, in, opts)
}

func (c *Client) ListHistory(ctx context.Context, in *ListHistoryRequest, opts ...grpc.CallOption) (*ListHistoryResponse, error) {
	return invoke[ListHistoryResponse](ctx, c, MethodListHistory, in, opts)
}
