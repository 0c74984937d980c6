package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/trade-prices/internal/ingest"
	"github.com/Dan9191/trade-prices/internal/models"
	"github.com/Dan9191/trade-prices/internal/presenter"
	"github.com/Dan9191/trade-prices/internal/repository"
	"github.com/Dan9191/trade-prices/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Store is the read side the handlers need
type Store interface {
	ListTrades(ctx context.Context, regionCode string, limit int) ([]models.TransactionRecord, error)
	ListProperties(ctx context.Context) ([]models.Property, error)
	GetProperty(ctx context.Context, id int64) (*models.Property, error)
}

// Ingester starts background ingestion runs
type Ingester interface {
	RunAsync(ctx context.Context) error
}

// Authenticator exchanges the admin password for a token
type Authenticator interface {
	Login(password string) (string, error)
}

type Handler struct {
	store   Store
	ingest  Ingester
	auth    Authenticator
	regions []models.Region
	log     *logrus.Logger
	now     func() time.Time
}

func NewHandler(store Store, ingest Ingester, auth Authenticator, regions []models.Region, log *logrus.Logger) *Handler {
	return &Handler{
		store:   store,
		ingest:  ingest,
		auth:    auth,
		regions: regions,
		log:     log,
		now:     time.Now,
	}
}

type propertyView struct {
	models.Property
	DDay              *presenter.Badge `json:"dday,omitempty"`
	Margin            *presenter.Delta `json:"margin,omitempty"`
	OriginalPriceText string           `json:"original_price_text"`
	RecentPriceText   string           `json:"recent_trade_price_text"`
}

func (h *Handler) present(p models.Property) propertyView {
	// listings without a stored margin derive it from the two prices
	if p.ExpectedMargin == 0 && p.OriginalPrice > 0 && p.RecentTradePrice > 0 {
		p.ExpectedMargin, p.MarginRate = presenter.Margin(p.OriginalPrice, p.RecentTradePrice)
	}
	v := propertyView{
		Property:          p,
		Margin:            presenter.FormatMargin(p.ExpectedMargin, p.MarginRate),
		OriginalPriceText: presenter.FormatPrice(p.OriginalPrice),
		RecentPriceText:   presenter.FormatPrice(p.RecentTradePrice),
	}
	if p.Deadline != nil {
		badge := presenter.DDay(*p.Deadline, h.now())
		v.DDay = &badge
	}
	return v
}

// ListProperties returns every listing with its badge and price labels
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.store.ListProperties(r.Context())
	if err != nil {
		h.log.Errorf("Failed to list properties: %v", err)
		http.Error(w, "Failed to list properties", http.StatusInternalServerError)
		return
	}
	views := make([]propertyView, 0, len(properties))
	for _, p := range properties {
		views = append(views, h.present(p))
	}
	writeJSON(w, http.StatusOK, views)
}

// GetProperty returns one listing
func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid property id", http.StatusBadRequest)
		return
	}
	p, err := h.store.GetProperty(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "Property not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Errorf("Failed to get property %d: %v", id, err)
		http.Error(w, "Failed to get property", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.present(*p))
}

type tradeView struct {
	models.TransactionRecord
	PriceText string `json:"price_text"`
}

// ListTrades returns recent trades for ?region=, which may be a district
// code or an address
func (h *Handler) ListTrades(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	if region == "" {
		http.Error(w, "region is required", http.StatusBadRequest)
		return
	}
	if _, err := strconv.Atoi(region); err != nil {
		code, ok := ingest.CodeFor(region)
		if !ok {
			http.Error(w, "Unknown region", http.StatusBadRequest)
			return
		}
		region = code
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	trades, err := h.store.ListTrades(r.Context(), region, limit)
	if err != nil {
		h.log.Errorf("Failed to list trades for %s: %v", region, err)
		http.Error(w, "Failed to list trades", http.StatusInternalServerError)
		return
	}
	views := make([]tradeView, 0, len(trades))
	for _, t := range trades {
		views = append(views, tradeView{TransactionRecord: t, PriceText: presenter.FormatWon(t.Amount)})
	}
	writeJSON(w, http.StatusOK, views)
}

// ListRegions returns the districts collected by ingestion
func (h *Handler) ListRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.regions)
}

// Login handles admin authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	token, err := h.auth.Login(req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	case errors.Is(err, service.ErrAdminDisabled):
		http.Error(w, "Admin login is disabled", http.StatusForbidden)
		return
	case err != nil:
		h.log.Errorf("Login failed: %v", err)
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// TriggerIngest starts a background ingestion run
func (h *Handler) TriggerIngest(w http.ResponseWriter, r *http.Request) {
	if h.ingest == nil {
		http.Error(w, "Ingestion is not configured", http.StatusServiceUnavailable)
		return
	}
	err := h.ingest.RunAsync(context.WithoutCancel(r.Context()))
	if errors.Is(err, service.ErrRunInProgress) {
		http.Error(w, "Ingestion already running", http.StatusConflict)
		return
	}
	if err != nil {
		h.log.Errorf("Failed to start ingestion: %v", err)
		http.Error(w, "Failed to start ingestion", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
