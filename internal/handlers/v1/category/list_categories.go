package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-api/internal/handlers"
	"github.com/carson-networks/budget-api/internal/logging"
)

// ListCategoriesOutput is the Huma output for listing categories.
type ListCategoriesOutput struct {
	Body []Category
}

// ListCategoriesHandler handles GET /categories.
type ListCategoriesHandler struct {
	CategoryService categoryService
}

func NewListCategoriesHandler(svc categoryService) *ListCategoriesHandler {
	return &ListCategoriesHandler{CategoryService: svc}
}

func (h *ListCategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/categories",
		Summary:     "List categories",
		Description: "Returns the caller's categories ordered by type, then name.",
		Tags:        []string{"Categories"},
		Security:    handlers.BearerAuth,
	}, h.handle)
}

func (h *ListCategoriesHandler) handle(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	userID, err := handlers.UserID(ctx)
	if err != nil {
		return nil, err
	}
	logData := logging.GetLogData(ctx)

	stopTimer := logData.AddTiming("listCategoriesMs")
	categories, err := h.CategoryService.ListCategories(ctx, userID)
	stopTimer()
	if err != nil {
		return nil, handlers.Error(ctx, err, "failed to list categories")
	}
	logData.AddData("categoryCount", len(categories))

	out := &ListCategoriesOutput{Body: make([]Category, len(categories))}
	for i := range categories {
		out.Body[i] = toCategory(&categories[i])
	}
	return out, nil
}
