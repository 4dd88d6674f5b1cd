package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/splitnest/splitnest/internal/events"
	"github.com/splitnest/splitnest/internal/ledger"
	"github.com/splitnest/splitnest/internal/middleware"
	"github.com/splitnest/splitnest/internal/models"
	"github.com/splitnest/splitnest/internal/report"
	"github.com/splitnest/splitnest/internal/split"
	"github.com/splitnest/splitnest/pkg/api"
)

// ExpenseService implements the ExpenseService RPC interface.
type ExpenseService struct {
	ledger    *ledger.Ledger
	publisher *events.Publisher
	sink      report.DocumentSink
	logger    *slog.Logger
}

var _ api.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates a new expense service. publisher may be nil when
// event publishing is disabled.
func NewExpenseService(l *ledger.Ledger, publisher *events.Publisher, sink report.DocumentSink, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{
		ledger:    l,
		publisher: publisher,
		sink:      sink,
		logger:    logger,
	}
}

// CreateExpense records a new expense paid by the authenticated user and
// splits it among the listed participants.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	payerID := middleware.GetUserID(ctx)
	if payerID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("authentication required"))
	}

	s.logger.Info("CreateExpense request",
		"payer_id", payerID,
		"split_type", req.Msg.SplitType,
		"participants", len(req.Msg.Shares))

	entries := make([]split.Entry, len(req.Msg.Shares))
	for i, share := range req.Msg.Shares {
		entries[i] = split.Entry{
			UserID:     share.UserID,
			Share:      share.Share,
			Percentage: share.Percentage,
		}
	}

	expense, err := s.ledger.CreateExpense(ctx, ledger.CreateExpenseInput{
		Description: req.Msg.Description,
		Amount:      req.Msg.Amount,
		PaidByID:    payerID,
		Split: split.Input{
			Type:    models.SplitType(strings.ToUpper(req.Msg.SplitType)),
			Entries: entries,
		},
	})
	if err != nil {
		s.logger.Error("Failed to create expense", "payer_id", payerID, "error", err)
		return nil, ledgerError(err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishExpenseCreated(ctx, expense); err != nil {
			// The expense is already committed; a lost event is logged,
			// never surfaced to the caller.
			s.logger.Warn("Failed to publish expense event", "expense_id", expense.ID, "error", err)
		}
	}

	s.logger.Info("Expense created", "expense_id", expense.ID, "amount", expense.Amount)
	return connect.NewResponse(&api.CreateExpenseResponse{
		Expense: toAPIExpense(expense, ""),
	}), nil
}

// ListExpensesForUser returns every share the given user owes, each joined
// with its owning expense. An empty user_id means the authenticated user.
func (s *ExpenseService) ListExpensesForUser(ctx context.Context, req *connect.Request[api.ListExpensesForUserRequest]) (*connect.Response[api.ListExpensesForUserResponse], error) {
	userID := req.Msg.UserID
	if userID == "" {
		userID = middleware.GetUserID(ctx)
	}
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("authentication required"))
	}

	shares, err := s.ledger.SharesForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list user expenses", "user_id", userID, "error", err)
		return nil, ledgerError(err)
	}

	out := make([]api.UserExpense, len(shares))
	for i, us := range shares {
		payerName := ""
		if us.PaidBy != nil {
			payerName = us.PaidBy.Name
		}
		out[i] = api.UserExpense{
			Share:   toAPIShare(us.Share),
			Expense: toAPIExpense(&us.Expense, payerName),
		}
	}

	return connect.NewResponse(&api.ListExpensesForUserResponse{Expenses: out}), nil
}

// ListAllExpenses returns every expense in the ledger, oldest first.
func (s *ExpenseService) ListAllExpenses(ctx context.Context, req *connect.Request[api.ListAllExpensesRequest]) (*connect.Response[api.ListAllExpensesResponse], error) {
	expenses, payers, err := s.ledger.AllExpenses(ctx)
	if err != nil {
		s.logger.Error("Failed to list expenses", "error", err)
		return nil, ledgerError(err)
	}

	out := make([]api.Expense, len(expenses))
	for i := range expenses {
		payerName := ""
		if payer := payers[expenses[i].PaidByID]; payer != nil {
			payerName = payer.Name
		}
		out[i] = toAPIExpense(&expenses[i], payerName)
	}

	return connect.NewResponse(&api.ListAllExpensesResponse{Expenses: out}), nil
}

// DownloadBalanceReport renders the authenticated user's balance statement
// as a downloadable document.
func (s *ExpenseService) DownloadBalanceReport(ctx context.Context, req *connect.Request[api.DownloadBalanceReportRequest]) (*connect.Response[api.DownloadBalanceReportResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("authentication required"))
	}

	shares, err := s.ledger.SharesForUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to build balance report", "user_id", userID, "error", err)
		return nil, ledgerError(err)
	}

	lines := report.Build(shares)

	var buf strings.Builder
	if err := s.sink.Render(&buf, "Balance Sheet", lines); err != nil {
		s.logger.Error("Failed to render balance report", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Balance report rendered", "user_id", userID, "lines", len(lines))
	return connect.NewResponse(&api.DownloadBalanceReportResponse{
		Filename:    s.sink.Filename(),
		ContentType: s.sink.ContentType(),
		Content:     buf.String(),
	}), nil
}

// ledgerError maps ledger sentinel errors onto Connect codes.
func ledgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrPersistence):
		return connect.NewError(connect.CodeInternal, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func toAPIExpense(expense *models.Expense, payerName string) api.Expense {
	shares := make([]api.ExpenseShare, len(expense.Shares))
	for i, share := range expense.Shares {
		shares[i] = toAPIShare(share)
	}
	return api.Expense{
		ID:          expense.ID,
		Description: expense.Description,
		Amount:      expense.Amount,
		PaidByID:    expense.PaidByID,
		PaidByName:  payerName,
		SplitType:   string(expense.SplitType),
		Shares:      shares,
		CreatedAt:   expense.CreatedAt,
	}
}

func toAPIShare(share models.ExpenseShare) api.ExpenseShare {
	out := api.ExpenseShare{
		ID:     share.ID,
		UserID: share.UserID,
		Share:  share.Share,
	}
	if share.Percentage.Valid {
		pct := share.Percentage.Decimal
		out.Percentage = &pct
	}
	return out
}
