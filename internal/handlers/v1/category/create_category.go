package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/budget-api/internal/handlers"
	"github.com/carson-networks/budget-api/internal/ledger"
	"github.com/carson-networks/budget-api/internal/logging"
)

// CreateCategoryBody is the request body for creating a category.
type CreateCategoryBody struct {
	Name string `json:"name,omitempty" doc:"Display name, 1-50 characters after trimming"`
	Type string `json:"type,omitempty" doc:"income or expense"`
}

type CreateCategoryInput struct {
	Body CreateCategoryBody
}

type CreateCategoryOutput struct {
	Body Category
}

// CreateCategoryHandler handles POST /categories.
type CreateCategoryHandler struct {
	CategoryService categoryService
}

func NewCreateCategoryHandler(svc categoryService) *CreateCategoryHandler {
	return &CreateCategoryHandler{CategoryService: svc}
}

func (h *CreateCategoryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/categories",
		Summary:       "Create category",
		Description:   "Creates a category. Names are unique per user and type.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
		Security:      handlers.BearerAuth,
	}, h.handle)
}

func (h *CreateCategoryHandler) handle(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	userID, err := handlers.UserID(ctx)
	if err != nil {
		return nil, err
	}
	kind, err := ledger.ParseKind(input.Body.Type)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	stopTimer := logging.GetLogData(ctx).AddTiming("createCategoryMs")
	created, err := h.CategoryService.CreateCategory(ctx, userID, kind, input.Body.Name)
	stopTimer()
	if err != nil {
		return nil, handlers.Error(ctx, err, "failed to create category")
	}

	return &CreateCategoryOutput{Body: toCategory(created)}, nil
}
