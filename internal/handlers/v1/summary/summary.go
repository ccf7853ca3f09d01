package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-api/internal/handlers"
	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/logging"
)

type CategorySpend struct {
	CategoryID   string `json:"categoryId" doc:"Category UUID"`
	CategoryName string `json:"categoryName" doc:"Category name, Unknown when it no longer exists"`
	Amount       int64  `json:"amount" doc:"Expense in minor currency units"`
}

type DailyExpense struct {
	Date   string `json:"date" doc:"UTC calendar day, YYYY-MM-DD"`
	Amount int64  `json:"amount" doc:"Expense in minor currency units"`
}

// Summary is the API representation of a monthly aggregate.
type Summary struct {
	Month           string          `json:"month" doc:"YYYY-MM"`
	TotalIncome     int64           `json:"totalIncome" doc:"Income in minor currency units"`
	TotalExpense    int64           `json:"totalExpense" doc:"Expense in minor currency units"`
	Net             int64           `json:"net" doc:"Income minus expense, may be negative"`
	SpendByCategory []CategorySpend `json:"spendByCategory" doc:"Expense per category, largest first"`
	DailyExpense    []DailyExpense  `json:"dailyExpense" doc:"Expense per day with activity, oldest first"`
}

func toSummary(agg *ledger.MonthlyAggregate) Summary {
	out := Summary{
		Month:           agg.Month,
		TotalIncome:     int64(agg.TotalIncome),
		TotalExpense:    int64(agg.TotalExpense),
		Net:             int64(agg.Net),
		SpendByCategory: make([]CategorySpend, len(agg.SpendByCategory)),
		DailyExpense:    make([]DailyExpense, len(agg.DailyExpense)),
	}
	for i, c := range agg.SpendByCategory {
		out.SpendByCategory[i] = CategorySpend{
			CategoryID:   c.CategoryID.String(),
			CategoryName: c.CategoryName,
			Amount:       int64(c.Amount),
		}
	}
	for i, d := range agg.DailyExpense {
		out.DailyExpense[i] = DailyExpense{Date: d.Date, Amount: int64(d.Amount)}
	}
	return out
}

// MonthInput is the query shared by the summary endpoints. Month is
// validated by the service so a missing month gets its own message.
type MonthInput struct {
	Month string `query:"month" doc:"YYYY-MM"`
}

type GetSummaryOutput struct {
	Body Summary
}

type summaryGetter interface {
	GetSummary(ctx context.Context, userID, month string) (*ledger.MonthlyAggregate, error)
}

// GetSummaryHandler handles GET /summary.
type GetSummaryHandler struct {
	SummaryService summaryGetter
}

func NewGetSummaryHandler(svc summaryGetter) *GetSummaryHandler {
	return &GetSummaryHandler{SummaryService: svc}
}

func (h *GetSummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        "/summary",
		Summary:     "Monthly summary",
		Description: "Totals, spend by category and the daily expense series for one month.",
		Tags:        []string{"Summary"},
		Security:    handlers.BearerAuth,
	}, h.handle)
}

func (h *GetSummaryHandler) handle(ctx context.Context, input *MonthInput) (*GetSummaryOutput, error) {
	userID, err := handlers.UserID(ctx)
	if err != nil {
		return nil, err
	}
	logData := logging.GetLogData(ctx)

	stopTimer := logData.AddTiming("summaryMs")
	agg, err := h.SummaryService.GetSummary(ctx, userID, input.Month)
	stopTimer()
	if err != nil {
		return nil, handlers.Error(ctx, err, "failed to build summary")
	}
	logData.AddData("month", agg.Month)

	return &GetSummaryOutput{Body: toSummary(agg)}, nil
}
