// Package handler はHTTP層を提供する。
// パス・クエリパラメータをレジストリ呼び出しに変換し、
// 結果をステータスコードとJSONレスポンスにマッピングする薄いアダプタ。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/mergington/internal/model"
)

// ActivityServiceInterface は活動ハンドラーが必要とするレジストリ操作のインターフェース。
type ActivityServiceInterface interface {
	// List は全活動のスナップショットを返す。
	List(ctx context.Context) map[string]model.Activity
	// Enroll は参加者を活動の名簿に追加する。
	Enroll(ctx context.Context, activityName, email string) error
	// Withdraw は参加者を活動の名簿から取り除く。
	Withdraw(ctx context.Context, activityName, email string) error
}

// MetricsRecorder は活動ハンドラーが記録するメトリクスのインターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordSignup(activityName string)
	RecordSignupRejected(reason string)
	RecordUnregister(activityName string)
	RecordUnregisterRejected(reason string)
}

// ActivityHandler は活動の一覧・登録・解除のHTTPハンドラー。
type ActivityHandler struct {
	service ActivityServiceInterface
	metrics MetricsRecorder
}

// NewActivityHandler はActivityHandlerを生成する。
func NewActivityHandler(service ActivityServiceInterface, metrics MetricsRecorder) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		metrics: metrics,
	}
}

// messageResponse は登録・解除成功時のAPIレスポンス。
type messageResponse struct {
	Message string `json:"message"`
}

// detailResponse はエラー時のAPIレスポンス。
// ポータルのAPI契約に合わせて `detail` フィールドのみを持つ。
type detailResponse struct {
	Detail string `json:"detail"`
}

// ListActivities は全活動の一覧を取得する。
// GET /activities
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities := h.service.List(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activities)
}

// Signup は活動への参加登録を処理する。
// POST /activities/{name}/signup?email=...
// emailクエリパラメータが欠落している場合は422を返す。
// 値が空文字列の場合は有効な参加者識別子として受け付ける。
func (h *ActivityHandler) Signup(w http.ResponseWriter, r *http.Request) {
	activityName := activityNameFromRequest(r)

	query := r.URL.Query()
	if !query.Has("email") {
		h.metrics.RecordSignupRejected(rejectionReason(model.NewMissingEmailError()))
		writeAPIErrorResponse(w, http.StatusUnprocessableEntity, model.NewMissingEmailError())
		return
	}
	email := query.Get("email")

	if err := h.service.Enroll(r.Context(), activityName, email); err != nil {
		h.metrics.RecordSignupRejected(rejectionReason(err))
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordSignup(activityName)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, activityName),
	})
}

// Unregister は活動からの登録解除を処理する。
// DELETE /activities/{name}/unregister?email=...
func (h *ActivityHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	activityName := activityNameFromRequest(r)

	query := r.URL.Query()
	if !query.Has("email") {
		h.metrics.RecordUnregisterRejected(rejectionReason(model.NewMissingEmailError()))
		writeAPIErrorResponse(w, http.StatusUnprocessableEntity, model.NewMissingEmailError())
		return
	}
	email := query.Get("email")

	if err := h.service.Withdraw(r.Context(), activityName, email); err != nil {
		h.metrics.RecordUnregisterRejected(rejectionReason(err))
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordUnregister(activityName)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, activityName),
	})
}

// --- ヘルパー関数 ---

// activityNameFromRequest はパスパラメータから活動名を取得する。
// chiはエスケープ済みパスでルーティングした場合にパラメータを
// エンコードされたまま返すことがあるため、明示的にデコードする。
func activityNameFromRequest(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	return name
}

// writeAPIErrorResponse はdetailフィールドのみのエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(detailResponse{
		Detail: apiErr.Message,
	})
}

// handleServiceError はレジストリから返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeActivityNotFound:
		return http.StatusNotFound
	case model.ErrCodeAlreadyRegistered, model.ErrCodeNotRegistered:
		return http.StatusBadRequest
	case model.ErrCodeMissingEmail:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// rejectionReason はエラーからメトリクスのreasonラベル値を導出する。
func rejectionReason(err error) string {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return strings.ToLower(apiErr.Code)
	}
	return "internal"
}
