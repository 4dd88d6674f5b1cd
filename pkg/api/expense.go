package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// ExpenseServicePrefix is the URL prefix all ExpenseService procedures share.
const ExpenseServicePrefix = "/splitnest.v1.ExpenseService/"

// ExpenseService procedure paths.
const (
	ExpenseServiceCreateExpenseProcedure         = ExpenseServicePrefix + "CreateExpense"
	ExpenseServiceListExpensesForUserProcedure   = ExpenseServicePrefix + "ListExpensesForUser"
	ExpenseServiceListAllExpensesProcedure       = ExpenseServicePrefix + "ListAllExpenses"
	ExpenseServiceDownloadBalanceReportProcedure = ExpenseServicePrefix + "DownloadBalanceReport"
)

// ExpenseServiceHandler is the server-side contract for the expense service.
type ExpenseServiceHandler interface {
	CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	ListExpensesForUser(ctx context.Context, req *connect.Request[ListExpensesForUserRequest]) (*connect.Response[ListExpensesForUserResponse], error)
	ListAllExpenses(ctx context.Context, req *connect.Request[ListAllExpensesRequest]) (*connect.Response[ListAllExpensesResponse], error)
	DownloadBalanceReport(ctx context.Context, req *connect.Request[DownloadBalanceReportRequest]) (*connect.Response[DownloadBalanceReportResponse], error)
}

// NewExpenseServiceHandler builds an http.Handler serving the expense
// service. It returns the path prefix to mount the handler on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withDefaultHandlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceCreateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...))
	mux.Handle(ExpenseServiceListExpensesForUserProcedure, connect.NewUnaryHandler(ExpenseServiceListExpensesForUserProcedure, svc.ListExpensesForUser, opts...))
	mux.Handle(ExpenseServiceListAllExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListAllExpensesProcedure, svc.ListAllExpenses, opts...))
	mux.Handle(ExpenseServiceDownloadBalanceReportProcedure, connect.NewUnaryHandler(ExpenseServiceDownloadBalanceReportProcedure, svc.DownloadBalanceReport, opts...))
	return ExpenseServicePrefix, mux
}

// ExpenseServiceClient is a client for the expense service.
type ExpenseServiceClient struct {
	createExpense         *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	listExpensesForUser   *connect.Client[ListExpensesForUserRequest, ListExpensesForUserResponse]
	listAllExpenses       *connect.Client[ListAllExpensesRequest, ListAllExpensesResponse]
	downloadBalanceReport *connect.Client[DownloadBalanceReportRequest, DownloadBalanceReportResponse]
}

// NewExpenseServiceClient constructs a client for the expense service.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	opts = withDefaultOptions(opts)
	return &ExpenseServiceClient{
		createExpense:         connect.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		listExpensesForUser:   connect.NewClient[ListExpensesForUserRequest, ListExpensesForUserResponse](httpClient, baseURL+ExpenseServiceListExpensesForUserProcedure, opts...),
		listAllExpenses:       connect.NewClient[ListAllExpensesRequest, ListAllExpensesResponse](httpClient, baseURL+ExpenseServiceListAllExpensesProcedure, opts...),
		downloadBalanceReport: connect.NewClient[DownloadBalanceReportRequest, DownloadBalanceReportResponse](httpClient, baseURL+ExpenseServiceDownloadBalanceReportProcedure, opts...),
	}
}

// CreateExpense calls splitnest.v1.ExpenseService.CreateExpense.
func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

// ListExpensesForUser calls splitnest.v1.ExpenseService.ListExpensesForUser.
func (c *ExpenseServiceClient) ListExpensesForUser(ctx context.Context, req *connect.Request[ListExpensesForUserRequest]) (*connect.Response[ListExpensesForUserResponse], error) {
	return c.listExpensesForUser.CallUnary(ctx, req)
}

// ListAllExpenses calls splitnest.v1.ExpenseService.ListAllExpenses.
func (c *ExpenseServiceClient) ListAllExpenses(ctx context.Context, req *connect.Request[ListAllExpensesRequest]) (*connect.Response[ListAllExpensesResponse], error) {
	return c.listAllExpenses.CallUnary(ctx, req)
}

// DownloadBalanceReport calls splitnest.v1.ExpenseService.DownloadBalanceReport.
func (c *ExpenseServiceClient) DownloadBalanceReport(ctx context.Context, req *connect.Request[DownloadBalanceReportRequest]) (*connect.Response[DownloadBalanceReportResponse], error) {
	return c.downloadBalanceReport.CallUnary(ctx, req)
}
