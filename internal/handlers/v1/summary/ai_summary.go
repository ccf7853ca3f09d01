package summary

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-api/internal/handlers"
	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/service"
)

// AISummary is the generated monthly summary, or a notice when the provider
// is rate limited.
type AISummary struct {
	Month    string                  `json:"month" doc:"YYYY-MM"`
	AI       string                  `json:"ai" doc:"Generated text, or a user-facing notice when fallback is set"`
	Fallback bool                    `json:"fallback" doc:"Set when the provider could not produce a summary"`
	Reason   string                  `json:"reason,omitempty" doc:"Why the fallback was used"`
	Input    *service.NarrationInput `json:"input,omitempty" doc:"Figures sent to the provider"`
}

type GetAISummaryOutput struct {
	Body AISummary
}

type aiSummaryGetter interface {
	GetAISummary(ctx context.Context, userID, month string) (*service.NarrationResult, error)
}

// GetAISummaryHandler handles GET /ai/summary.
type GetAISummaryHandler struct {
	AISummaryService aiSummaryGetter
}

func NewGetAISummaryHandler(svc aiSummaryGetter) *GetAISummaryHandler {
	return &GetAISummaryHandler{AISummaryService: svc}
}

func (h *GetAISummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-ai-summary",
		Method:      http.MethodGet,
		Path:        "/ai/summary",
		Summary:     "AI monthly summary",
		Description: "A generated summary of one month with three recommendations. " +
			"Responds 200 with fallback set when the provider is rate limited.",
		Tags:     []string{"Summary"},
		Security: handlers.BearerAuth,
	}, h.handle)
}

func (h *GetAISummaryHandler) handle(ctx context.Context, input *MonthInput) (*GetAISummaryOutput, error) {
	userID, err := handlers.UserID(ctx)
	if err != nil {
		return nil, err
	}
	logData := logging.GetLogData(ctx)

	stopTimer := logData.AddTiming("aiSummaryMs")
	res, err := h.AISummaryService.GetAISummary(ctx, userID, input.Month)
	stopTimer()
	if err != nil {
		return nil, handlers.Error(ctx, err, "AI_SUMMARY_FAILED")
	}
	logData.AddData("aiFallback", res.Fallback)

	return &GetAISummaryOutput{Body: AISummary{
		Month:    res.Month,
		AI:       res.Text,
		Fallback: res.Fallback,
		Reason:   res.Reason,
		Input:    res.Input,
	}}, nil
}
