package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"leads-relay-bot/internal/domain"
	"leads-relay-bot/internal/domain/model"
	"leads-relay-bot/internal/infra/logging"
)

const maxNotifyBody = 64 << 10

// Wire DTOs use pointers so that an absent field can be told apart from 0.
type uploadRequest struct {
	TelegramID     *string `json:"telegram_id" validate:"required"`
	TotalValid     *int    `json:"total_valid" validate:"required"`
	PointsCredited *int    `json:"points_credited" validate:"required"`
}

type purchaseRequest struct {
	TelegramID *string `json:"telegram_id" validate:"required"`
	LeadPhone  *string `json:"lead_phone" validate:"required"`
	Price      *int    `json:"price" validate:"required"`
	NewBalance *int    `json:"new_balance" validate:"required"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNotifyUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	_, err := s.notifyUC.NotifyUpload(r.Context(), model.UploadNotification{
		TelegramID:     *req.TelegramID,
		TotalValid:     *req.TotalValid,
		PointsCredited: *req.PointsCredited,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNotifyPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	_, err := s.notifyUC.NotifyPurchase(r.Context(), model.PurchaseNotification{
		TelegramID: *req.TelegramID,
		LeadPhone:  *req.LeadPhone,
		Price:      *req.Price,
		NewBalance: *req.NewBalance,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a JSON object and checks required fields are present.
func decode(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxNotifyBody))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", domain.ErrInvalidArgument, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	return model.Validate(dst)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrInvalidArgument) {
		status = http.StatusUnprocessableEntity
	}
	logging.With(r.Context(), s.log).Warn().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("notify rejected")
	writeDetail(w, status, err.Error())
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
