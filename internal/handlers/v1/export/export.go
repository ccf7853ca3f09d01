package export

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-api/internal/handlers"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/service"
)

type ExportTransactionsInput struct {
	Month      string `query:"month" doc:"YYYY-MM, required"`
	Type       string `query:"type" doc:"Restrict to income or expense"`
	CategoryID string `query:"categoryId" doc:"Restrict to one category"`
}

type ExportTransactionsOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

type csvExporter interface {
	ExportCSV(ctx context.Context, userID string, filter service.TransactionFilter) (*service.CSVExport, error)
}

// ExportTransactionsHandler handles GET /export/transactions.csv.
type ExportTransactionsHandler struct {
	ExportService csvExporter
}

func NewExportTransactionsHandler(svc csvExporter) *ExportTransactionsHandler {
	return &ExportTransactionsHandler{ExportService: svc}
}

func (h *ExportTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-transactions",
		Method:      http.MethodGet,
		Path:        "/export/transactions.csv",
		Summary:     "Export transactions",
		Description: "Downloads one month of transactions as CSV, oldest first.",
		Tags:        []string{"Export"},
		Security:    handlers.BearerAuth,
		Responses: map[string]*huma.Response{
			"200": {
				Description: "CSV file",
				Content:     map[string]*huma.MediaType{"text/csv": {}},
			},
		},
	}, h.handle)
}

func (h *ExportTransactionsHandler) handle(ctx context.Context, input *ExportTransactionsInput) (*ExportTransactionsOutput, error) {
	userID, err := handlers.UserID(ctx)
	if err != nil {
		return nil, err
	}
	filter := service.TransactionFilter{Month: input.Month}
	if filter.Kind, err = handlers.ParseOptionalKind(input.Type); err != nil {
		return nil, err
	}
	if filter.CategoryID, err = handlers.ParseOptionalUUID(input.CategoryID, "categoryId"); err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	stopTimer := logData.AddTiming("exportMs")
	file, err := h.ExportService.ExportCSV(ctx, userID, filter)
	stopTimer()
	if err != nil {
		return nil, handlers.Error(ctx, err, "failed to export transactions")
	}
	logData.AddData("exportRows", file.Rows)

	return &ExportTransactionsOutput{
		ContentType:        "text/csv; charset=utf-8",
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", file.Filename),
		Body:               file.Data,
	}, nil
}
