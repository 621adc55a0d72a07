package items

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/items-api/backend/internal/model/item"
	itemservice "github.com/zhouzirui/items-api/backend/internal/service/items"
	"github.com/zhouzirui/items-api/backend/pkg/utils"
)

var errTrailingData = errors.New("unexpected data after JSON body")

// Store 是处理器依赖的条目存储操作
type Store interface {
	ListAll(ctx context.Context) ([]item.Item, error)
	FindByName(ctx context.Context, name string) (item.Item, error)
	Create(ctx context.Context, in item.CreateInput) (item.Item, error)
	Update(ctx context.Context, origName string, in item.UpdateInput) (item.Item, error)
	Remove(ctx context.Context, name string) error
}

// Handler 条目服务的HTTP处理器
type Handler struct {
	store Store
}

// New 创建条目处理器
func New(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes 注册条目相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/items", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{name}", h.handleGet)
		r.Patch("/{name}", h.handleUpdate)
		r.Delete("/{name}", h.handleDelete)
	})
}

// handleList 列出所有条目
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.ListAll(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, all)
}

// handleCreate 新增条目
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in item.CreateInput
	if err := decodeBody(r, &in); err != nil {
		respondStoreError(w, err)
		return
	}

	created, err := h.store.Create(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]item.Item{"added": created})
}

// handleGet 按名称查询条目
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	found, err := h.store.FindByName(r.Context(), nameParam(r))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, found)
}

// handleUpdate 部分更新条目
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in item.UpdateInput
	if err := decodeBody(r, &in); err != nil {
		respondStoreError(w, err)
		return
	}

	updated, err := h.store.Update(r.Context(), nameParam(r), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]item.Item{"updated": updated})
}

// handleDelete 删除条目
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Remove(r.Context(), nameParam(r)); err != nil {
		respondStoreError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

// nameParam returns the decoded {name} path segment.
func nameParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	// chi routes on the escaped path when RawPath is set, e.g. for "%2F".
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

// decodeBody 解析JSON请求体，空请求体视为空对象
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return itemservice.NewValidationError("invalid request body", err)
	}
	// 请求体只能包含一个JSON值
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return itemservice.NewValidationError("invalid request body", errTrailingData)
	}
	return nil
}

// respondStoreError 将存储错误映射为HTTP响应
func respondStoreError(w http.ResponseWriter, err error) {
	var itemErr *itemservice.Error
	if errors.As(err, &itemErr) {
		utils.RespondError(w, itemErr.StatusCode(), itemErr.Message)
		return
	}
	log.Printf("[items] unexpected error: %v", err)
	utils.RespondError(w, http.StatusInternalServerError, "internal server error")
}
