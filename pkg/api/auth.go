package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// AuthServicePrefix is the URL prefix all AuthService procedures share.
const AuthServicePrefix = "/splitnest.v1.AuthService/"

// AuthService procedure paths.
const (
	AuthServiceRegisterProcedure = AuthServicePrefix + "Register"
	AuthServiceLoginProcedure    = AuthServicePrefix + "Login"
	AuthServiceGetUserProcedure  = AuthServicePrefix + "GetUser"
)

// AuthServiceHandler is the server-side contract for the auth service.
type AuthServiceHandler interface {
	Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetUser(ctx context.Context, req *connect.Request[GetUserRequest]) (*connect.Response[GetUserResponse], error)
}

// NewAuthServiceHandler builds an http.Handler serving the auth service.
// It returns the path prefix to mount the handler on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withDefaultHandlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceGetUserProcedure, connect.NewUnaryHandler(AuthServiceGetUserProcedure, svc.GetUser, opts...))
	return AuthServicePrefix, mux
}

// AuthServiceClient is a client for the auth service.
type AuthServiceClient struct {
	register *connect.Client[RegisterRequest, RegisterResponse]
	login    *connect.Client[LoginRequest, LoginResponse]
	getUser  *connect.Client[GetUserRequest, GetUserResponse]
}

// NewAuthServiceClient constructs a client for the auth service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = withDefaultOptions(opts)
	return &AuthServiceClient{
		register: connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:    connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getUser:  connect.NewClient[GetUserRequest, GetUserResponse](httpClient, baseURL+AuthServiceGetUserProcedure, opts...),
	}
}

// Register calls splitnest.v1.AuthService.Register.
func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

// Login calls splitnest.v1.AuthService.Login.
func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// GetUser calls splitnest.v1.AuthService.GetUser.
func (c *AuthServiceClient) GetUser(ctx context.Context, req *connect.Request[GetUserRequest]) (*connect.Response[GetUserResponse], error) {
	return c.getUser.CallUnary(ctx, req)
}
